// Package objectstore implements storage.ObjectStorage on S3 and on the local disk.
package objectstore

import (
	"path"
	"strings"

	"github.com/gofrs/uuid"
)

// objectKey returns "<namespace>/<uuid>-<name>" with name reduced to a safe file name.
func objectKey(namespace, name string) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return namespace + "/" + id.String() + "-" + cleanName(name), nil
}

func cleanName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	clean = strings.TrimLeft(clean, ".")
	if clean == "" {
		return "file"
	}
	return clean
}
