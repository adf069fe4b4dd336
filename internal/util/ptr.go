package util

func FloatPtr(v float64) *float64 { return &v }

func StringPtr(v string) *string { return &v }
