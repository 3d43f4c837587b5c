package output

// T looks up user-facing text by message code.
type T interface {
	// T renders key for locale. data fills template placeholders and may be nil.
	T(locale, key string, data map[string]any) string
}
