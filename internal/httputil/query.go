package httputil

import (
	"net/url"
	"reflect"
)

// GetURLFields parses a query filter struct against the request URL.
//
// queryFields contains the names of all filter fields that are set in the
// URL and can be passed to gorm's Where as the field list, setFields
// contains every field present in the URL including the ones tagged
// filterField:"false" that the caller filters by hand.
func GetURLFields(u *url.URL, filter any) ([]any, []string) {
	queryFields := []any{}
	setFields := []string{}

	query := u.Query()

	rt := reflect.TypeOf(filter)
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)

		form := field.Tag.Get("form")
		if form == "" {
			continue
		}

		if !query.Has(form) {
			continue
		}

		setFields = append(setFields, field.Name)

		if field.Tag.Get("filterField") != "false" {
			queryFields = append(queryFields, field.Name)
		}
	}

	return queryFields, setFields
}
