// Package validate checks tagged structs with go-playground/validator and
// turns the failures into readable English messages.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ErrInvalid wraps every validation failure returned by Struct.
var ErrInvalid = errors.New("invalid")

var (
	once   sync.Once
	engine *validator.Validate
	trans  ut.Translator
)

func setup() {
	engine = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by the name users write them with.
	engine.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"yaml", "json"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	english := en.New()
	trans, _ = ut.New(english, english).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(engine, trans); err != nil {
		panic(fmt.Sprintf("register validator translations: %v", err))
	}
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	once.Do(setup)

	err := engine.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Translate(trans))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
