package assets

import (
	"fmt"
	"os"
	"strings"
)

// ResolveStyle turns a style name, file path or inline CSS into CSS content.
// An empty input selects DefaultStyleName.
func ResolveStyle(input string) (string, error) {
	switch {
	case input == "":
		return LoadStyle(DefaultStyleName)
	case strings.ContainsAny(input, "/\\"):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided stylesheet path
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, input, err)
		}
		return string(content), nil
	case strings.Contains(input, "{"):
		return input, nil
	default:
		return LoadStyle(input)
	}
}
