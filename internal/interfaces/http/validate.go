package http

import "github.com/go-playground/validator/v10"

// validate instancia compartida del validador de structs para los bodies.
var validate = validator.New()
