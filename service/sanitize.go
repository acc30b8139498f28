package service

import "github.com/akashkendre1298/vastureports/model"

// InternalFields never leave the service
var InternalFields = []string{"_id", "password", "otp", "__v"}

// Sanitize returns copies of records without InternalFields, in the same order
func Sanitize(records []model.RawRecord) []model.SanitizedRecord {
	out := make([]model.SanitizedRecord, len(records))
	for i, r := range records {
		out[i] = SanitizeRecord(r)
	}
	return out
}

func SanitizeRecord(r map[string]any) model.SanitizedRecord {
	clean := make(model.SanitizedRecord, len(r))
	for k, v := range r {
		clean[k] = v
	}
	for _, k := range InternalFields {
		delete(clean, k)
	}
	return clean
}
