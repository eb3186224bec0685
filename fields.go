package fractly

// Fields represents a serializable representation of a transformed value
type Fields map[string]interface{}

// MergeAbsent copies src entries whose keys are absent in f; existing keys win
func (f Fields) MergeAbsent(src Fields) Fields {
	for k, v := range src {
		if _, ok := f[k]; ok {
			continue
		}
		f[k] = v
	}
	return f
}

// Clone returns a shallow copy
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	ret := make(Fields, len(f))
	for k, v := range f {
		ret[k] = v
	}
	return ret
}
