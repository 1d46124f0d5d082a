package validator

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-playground/form/v4"
)

var errInvalidForm = errors.New("invalid form body")

// formDecoder reads the same json tags the JSON decoder and the validator use.
var formDecoder = func() *form.Decoder {
	d := form.NewDecoder()
	d.SetTagName("json")
	return d
}()

func isForm(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/x-www-form-urlencoded"
}

// decodeForm copies form values into the struct dst points to. Fields absent
// from the form keep their zero value, so pointer fields stay nil and
// `required` still fires.
func decodeForm(values url.Values, dst any) error {
	if err := formDecoder.Decode(dst, values); err != nil {
		return fmt.Errorf("%w: %w", errInvalidForm, err)
	}
	return nil
}
