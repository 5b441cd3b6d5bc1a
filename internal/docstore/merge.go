package docstore

import "encoding/json"

// mergeJSON merges the object patch into the object base. Nested objects are
// merged recursively; every other value in patch replaces the one in base.
func mergeJSON(base, patch []byte) ([]byte, error) {
	var dst, src map[string]any
	if err := json.Unmarshal(base, &dst); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(patch, &src); err != nil {
		return nil, err
	}
	if dst == nil {
		dst = make(map[string]any)
	}
	mergeMaps(dst, src)
	return json.Marshal(dst)
}

func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		sv, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		dv, ok := dst[k].(map[string]any)
		if !ok {
			dst[k] = sv
			continue
		}
		mergeMaps(dv, sv)
	}
}
