package employee

// NewRecord projects an employee into the full response shape via the field
// descriptor table.
func NewRecord(e *Employee) Record {
	var rec Record
	for _, fd := range Schema {
		fd.copy(e, &rec)
	}
	return rec
}

// Mask nulls every gated field not present in authorizedColumns. Keys stay
// in the serialized record, only values are dropped. Masking an already
// masked record with the same set is a no-op.
func Mask(rec *Record, authorizedColumns []string) {
	authorized := make(map[string]struct{}, len(authorizedColumns))
	for _, c := range authorizedColumns {
		authorized[c] = struct{}{}
	}
	for _, fd := range Schema {
		if !fd.Gated {
			continue
		}
		if _, ok := authorized[fd.Name]; !ok {
			fd.clear(rec)
		}
	}
}

// MaskedRecord builds the projection and masks it in one step.
func MaskedRecord(e *Employee, authorizedColumns []string) Record {
	rec := NewRecord(e)
	Mask(&rec, authorizedColumns)
	return rec
}
