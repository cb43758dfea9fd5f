package placesserver

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/Apurer/go-gin-places-api/internal/shared/errors"
)

// MsgInvalidInputs is returned for any request body that fails the validation gate.
const MsgInvalidInputs = "Invalid inputs passed, please check your data."

var registerOnce sync.Once

// registerJSONFieldNames makes validator report json field names.
func registerJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

// respondError renders typed application errors through the shared responder.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	apierrors.RespondError(c, err)
}

// respondBindingError turns a failed bind into a 422 with per-field details.
func respondBindingError(c *gin.Context, err error) {
	_ = c.Error(err)
	apierrors.DefaultResponder.ValidationFailed(c, MsgInvalidInputs, fieldErrors(err))
}

func fieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule = fmt.Sprintf("%s=%s", rule, fe.Param())
		}
		fields[fe.Field()] = fmt.Sprintf("failed on the '%s' rule", rule)
	}
	return fields
}
