package schema

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern    = regexp.MustCompile(`^\d{10}$`)
	objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
	pincodePattern  = regexp.MustCompile(`^\d{6}$`)

	engineOnce sync.Once
	engine     *validator.Validate
)

// Validator returns the shared validator with the form specific tags registered:
// phone (10 digits), objectid (24 hex chars) and pincode (6 digits).
func Validator() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("phone", matches(phonePattern))
		_ = v.RegisterValidation("objectid", matches(objectIDPattern))
		_ = v.RegisterValidation("pincode", matches(pincodePattern))
		engine = v
	})
	return engine
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}
