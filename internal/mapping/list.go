package mapping

func List[A any, B any](list []A, mappingFunc func(A) B) []B {
	result := make([]B, len(list))
	for i, a := range list {
		result[i] = mappingFunc(a)
	}
	return result
}

func PtrOrNil[A any, B any](value *A, mappingFunc func(A) B) *B {
	if value == nil {
		return nil
	}
	b := mappingFunc(*value)
	return &b
}
