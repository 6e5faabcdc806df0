//go:build !linux || tinygo

package device

// readMounts has no mount table to read off Linux; every drive is
// reported unmounted.
func readMounts(string) (map[string]string, error) {
	return map[string]string{}, nil
}
