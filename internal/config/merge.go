package config

// DeepMerge merges override into base in place and returns base. When
// both sides hold a nested mapping the merge recurses; every other
// override value, lists included, replaces the base value outright.
func DeepMerge(base, override map[string]any) map[string]any {
	for key, value := range override {
		if nested, ok := value.(map[string]any); ok {
			if existing, ok := base[key].(map[string]any); ok {
				DeepMerge(existing, nested)
				continue
			}
		}
		base[key] = value
	}
	return base
}
