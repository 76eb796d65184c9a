// Package formdef describes forms as data: fields with stable keys,
// mutually-exclusive choice groups, quantity counters, visibility-scoped
// field groups, and the mirror relationship used for address copying.
//
// A Form is declarative; it carries no state and no behavior beyond
// validation of its own shape. Runtime state lives in formstate, rules in
// validate, persistence in draft. Definitions come from three places: the
// built-in OrderForm and RegistrationForm, JSON/YAML documents via the
// loader, or an annotated OpenAPI document via the openapi package.
package formdef
