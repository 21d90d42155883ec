package sitelist

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// ApplyInputOperation применяет трансформацию идентификатора из каталога.
// Неизвестные операции возвращают вход без изменений.
func ApplyInputOperation(value, operation string) string {
	op := strings.ToLower(strings.TrimSpace(operation))

	switch op {
	case "", "identity", "none", "noop":
		return value
	case "lower":
		return strings.ToLower(value)
	case "strip":
		return strings.TrimSpace(value)
	case "urlencode", "url-encode", "url_encode":
		return url.QueryEscape(value)
	// Хеши встречаются в email-каталогах (Gravatar-подобные проверки).
	case "hash-md5", "md5":
		sum := md5.Sum([]byte(value))
		return hex.EncodeToString(sum[:])
	case "hash-sha1", "sha1":
		sum := sha1.Sum([]byte(value))
		return hex.EncodeToString(sum[:])
	case "hash-sha256", "sha256":
		sum := sha256.Sum256([]byte(value))
		return hex.EncodeToString(sum[:])
	}

	return value
}
