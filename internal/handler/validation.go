package handler

import (
	"fmt"

	"coinnecta/internal/catalog"
	"coinnecta/internal/currency"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the "country" and "currency" binding rules to gin's validator.
func RegisterValidators(cat *catalog.Catalog, conv *currency.Converter) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("country", func(fl validator.FieldLevel) bool {
		_, ok := cat.Country(fl.Field().String())
		return ok
	}); err != nil {
		return err
	}

	known := make(map[string]bool)
	for _, code := range conv.Codes() {
		known[code] = true
	}
	return v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return known[fl.Field().String()]
	})
}
