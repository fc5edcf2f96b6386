package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BindData binds the JSON body of the request to the struct passed in.
// Errors are returned as the package sentinels so that callers can map
// them to HTTP statuses.
func BindData(c *gin.Context, data any) error {
	err := c.ShouldBindJSON(data)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// GetBodyFields returns the names of all struct fields of the reference
// type for which the request body contains the JSON key, including keys
// set to null. This enables PATCH requests to reset fields to their zero
// value.
//
// The body is restored afterwards so that BindData can still read it.
func GetBodyFields(c *gin.Context, reference any) ([]any, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, ErrInvalidBody
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var raw map[string]json.RawMessage
	err = json.Unmarshal(body, &raw)
	if err != nil {
		return nil, ErrInvalidBody
	}

	fields := []any{}
	rt := reflect.TypeOf(reference)
	for i := 0; i < rt.NumField(); i++ {
		tag := strings.SplitN(rt.Field(i).Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			continue
		}

		if _, ok := raw[tag]; ok {
			fields = append(fields, rt.Field(i).Name)
		}
	}

	return fields, nil
}
