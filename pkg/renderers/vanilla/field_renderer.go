package vanilla

import (
	"strings"

	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/report"
)

// renderField emits one field block: chrome wrapper, label, control,
// sanitised help, any blocking notice addressed to the field, and the
// paired error slot. The slot is always present so the client runtime
// can fill it without re-rendering; it carries hidden until a message
// lands in it.
func renderField(b *strings.Builder, field formdef.Field, view formstate.View, options render.Options) {
	messages := options.Errors[field.Key]

	b.WriteString(`  <div class="`)
	b.WriteString(DefaultFieldClass)
	b.WriteString(`"`)
	writeAttr(b, "data-field", field.Key)
	writeAttr(b, "data-kind", string(field.Kind))
	b.WriteString(">\n")

	switch field.Kind {
	case formdef.KindCounter:
		counterControl(b, field, view.Counters[field.Key])
	case formdef.KindChoice:
		choiceControl(b, field, view.Selections[field.Key], len(messages) > 0)
	case formdef.KindCheckbox:
		checkboxControl(b, field, view.Flags[field.Key])
	case formdef.KindSelect:
		fieldLabel(b, field)
		selectControl(b, field, view.Values[field.Key], len(messages) > 0)
	case formdef.KindTextarea:
		fieldLabel(b, field)
		textareaControl(b, field, view.Values[field.Key], len(messages) > 0)
	default:
		fieldLabel(b, field)
		textControl(b, field, view.Values[field.Key], len(messages) > 0)
	}

	if help := strings.TrimSpace(field.Help); help != "" {
		b.WriteString(`    <small id="`)
		b.WriteString(escape(helpID(field.Key)))
		b.WriteString(`" class="`)
		b.WriteString(string(ClassHelp))
		b.WriteString(`">`)
		// Help markup is sanitised when the definition is validated.
		b.WriteString(help)
		b.WriteString("</small>\n")
	}

	if options.Notice != "" && options.NoticeField == field.Key {
		b.WriteString(`    <p class="`)
		b.WriteString(DefaultNoticeClass)
		b.WriteString(`" role="status" data-ff-focus>`)
		b.WriteString(escape(options.Notice))
		b.WriteString("</p>\n")
	}

	errorSlot(b, report.SlotFor(field.Key), messages)

	b.WriteString("  </div>\n")
}

func fieldLabel(b *strings.Builder, field formdef.Field) {
	if strings.TrimSpace(field.Label) == "" {
		return
	}
	b.WriteString(`    <label class="`)
	b.WriteString(string(ClassLabel))
	b.WriteString(`" for="`)
	b.WriteString(escape(controlID(field.Key)))
	b.WriteString(`">`)
	b.WriteString(escape(field.Label))
	if field.Required {
		b.WriteString(` *`)
	}
	b.WriteString("</label>\n")
}

func textControl(b *strings.Builder, field formdef.Field, value string, errored bool) {
	b.WriteString(`    <input class="`)
	b.WriteString(string(ClassControl))
	b.WriteString(`"`)
	writeAttr(b, "type", inputType(field.Kind))
	writeAttr(b, "id", controlID(field.Key))
	writeAttr(b, "name", field.Key)
	// Passwords are never echoed back into markup.
	if field.Kind != formdef.KindPassword {
		writeAttr(b, "value", value)
	}
	writeAttr(b, "placeholder", field.Placeholder)
	writeAttr(b, "autocomplete", field.Autocomplete)
	writeControlAria(b, field, errored)
	b.WriteString(">\n")
}

func textareaControl(b *strings.Builder, field formdef.Field, value string, errored bool) {
	b.WriteString(`    <textarea class="`)
	b.WriteString(string(ClassControl))
	b.WriteString(`"`)
	writeAttr(b, "id", controlID(field.Key))
	writeAttr(b, "name", field.Key)
	writeAttr(b, "rows", "3")
	writeAttr(b, "placeholder", field.Placeholder)
	writeControlAria(b, field, errored)
	b.WriteString(">")
	b.WriteString(escape(value))
	b.WriteString("</textarea>\n")
}

func selectControl(b *strings.Builder, field formdef.Field, value string, errored bool) {
	b.WriteString(`    <select class="`)
	b.WriteString(string(ClassControl))
	b.WriteString(`"`)
	writeAttr(b, "id", controlID(field.Key))
	writeAttr(b, "name", field.Key)
	writeControlAria(b, field, errored)
	b.WriteString(">\n")
	if !field.Required {
		b.WriteString("      <option value=\"\"></option>\n")
	}
	for _, option := range field.Options {
		b.WriteString(`      <option`)
		writeAttr(b, "value", option.Value)
		writeBoolAttr(b, "selected", option.Value == value)
		b.WriteString(">")
		b.WriteString(escape(optionLabel(option)))
		b.WriteString("</option>\n")
	}
	b.WriteString("    </select>\n")
}

// choiceControl renders a radio group. Every radio resubmits on change
// so choice selections round-trip immediately and dependent groups can
// follow the selection.
func choiceControl(b *strings.Builder, field formdef.Field, selected string, errored bool) {
	groupLabelID := controlID(field.Key) + "-label"

	if strings.TrimSpace(field.Label) != "" {
		b.WriteString(`    <span class="`)
		b.WriteString(string(ClassLabel))
		b.WriteString(`" id="`)
		b.WriteString(escape(groupLabelID))
		b.WriteString(`">`)
		b.WriteString(escape(field.Label))
		b.WriteString("</span>\n")
	}

	b.WriteString(`    <div class="`)
	b.WriteString(string(ClassChoice))
	b.WriteString(`" role="radiogroup"`)
	writeAttr(b, "aria-labelledby", groupLabelID)
	if errored {
		b.WriteString(` aria-invalid="true"`)
	}
	b.WriteString(">\n")
	for _, option := range field.Options {
		b.WriteString(`      <label><input type="radio"`)
		writeAttr(b, "id", optionID(field.Key, option.Value))
		writeAttr(b, "name", field.Key)
		writeAttr(b, "value", option.Value)
		writeBoolAttr(b, "checked", option.Value == selected)
		b.WriteString(` data-ff-autosubmit> `)
		b.WriteString(escape(optionLabel(option)))
		b.WriteString("</label>\n")
	}
	b.WriteString("    </div>\n")
}

func checkboxControl(b *strings.Builder, field formdef.Field, checked bool) {
	b.WriteString(`    <label class="`)
	b.WriteString(string(ClassCheckbox))
	b.WriteString(`"><input type="checkbox"`)
	writeAttr(b, "id", controlID(field.Key))
	writeAttr(b, "name", field.Key)
	writeAttr(b, "value", "on")
	writeBoolAttr(b, "checked", checked)
	if field.Mirror != nil {
		b.WriteString(` data-ff-mirror`)
	}
	b.WriteString(` data-ff-autosubmit> `)
	b.WriteString(escape(field.Label))
	b.WriteString("</label>\n")
}

// counterControl renders the minus button, the bracketed count and the
// plus button. Both buttons are plain submit buttons so quantities work
// without scripting; the decrement is disabled at zero.
func counterControl(b *strings.Builder, field formdef.Field, counter formstate.CounterView) {
	b.WriteString(`    <div class="`)
	b.WriteString(string(ClassCounter))
	b.WriteString(`"`)
	writeAttr(b, "data-counter", field.Key)
	b.WriteString(">\n")

	b.WriteString(`      <span class="`)
	b.WriteString(string(ClassLabel))
	b.WriteString(`">`)
	b.WriteString(escape(field.Label))
	b.WriteString("</span>\n")

	b.WriteString(`      <button type="submit" name="ff-dec"`)
	writeAttr(b, "value", field.Key)
	writeAttr(b, "aria-label", "Remove one "+field.Label)
	writeBoolAttr(b, "disabled", !counter.DecrementEnabled)
	b.WriteString(">-</button>\n")

	b.WriteString(`      <output`)
	writeAttr(b, "id", counter.Slot)
	b.WriteString(` class="formflow-counter__count" aria-live="polite">`)
	b.WriteString(escape(counter.Label))
	b.WriteString("</output>\n")

	b.WriteString(`      <button type="submit" name="ff-inc"`)
	writeAttr(b, "value", field.Key)
	writeAttr(b, "aria-label", "Add one "+field.Label)
	b.WriteString(">+</button>\n")

	b.WriteString("    </div>\n")
}

func errorSlot(b *strings.Builder, slot string, messages []string) {
	b.WriteString(`    <p id="`)
	b.WriteString(escape(slot))
	b.WriteString(`" class="`)
	b.WriteString(DefaultErrorClass)
	b.WriteString(`" role="alert"`)
	writeBoolAttr(b, "hidden", len(messages) == 0)
	b.WriteString(">")
	for i, message := range messages {
		if i > 0 {
			b.WriteString("<br>")
		}
		b.WriteString(escape(message))
	}
	b.WriteString("</p>\n")
}

func writeControlAria(b *strings.Builder, field formdef.Field, errored bool) {
	if field.Required {
		b.WriteString(` aria-required="true"`)
	}
	describedBy := make([]string, 0, 2)
	if strings.TrimSpace(field.Help) != "" {
		describedBy = append(describedBy, helpID(field.Key))
	}
	if errored {
		b.WriteString(` aria-invalid="true"`)
		describedBy = append(describedBy, report.SlotFor(field.Key))
	}
	writeAttr(b, "aria-describedby", strings.Join(describedBy, " "))
}

func inputType(kind formdef.Kind) string {
	switch kind {
	case formdef.KindEmail:
		return "email"
	case formdef.KindTel:
		return "tel"
	case formdef.KindPassword:
		return "password"
	default:
		return "text"
	}
}

func optionLabel(option formdef.Option) string {
	if strings.TrimSpace(option.Label) != "" {
		return option.Label
	}
	return option.Value
}

func helpID(key string) string {
	return controlID(key) + "-help"
}
