package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AngoraSix/projects.core/internal/projects/domain"
)

// contributorKey is the gin context key the middleware stores the
// requesting contributor under.
const contributorKey = "requesting_contributor"

type contributorHeader struct {
	ContributorID string `json:"contributorId"`
}

// RequestingContributor extracts the gateway-supplied contributor header
// (base64url-encoded JSON) into the request context. The header carries
// an already-authenticated identity; this service never validates
// credentials itself, so a missing or malformed header just leaves the
// request anonymous.
func RequestingContributor(headerName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(headerName))
		if raw == "" {
			c.Next()
			return
		}
		decoded, err := decodeBase64URL(raw)
		if err != nil {
			c.Next()
			return
		}
		var header contributorHeader
		if err := json.Unmarshal(decoded, &header); err != nil || header.ContributorID == "" {
			c.Next()
			return
		}
		c.Set(contributorKey, domain.Contributor{ContributorID: header.ContributorID})
		c.Next()
	}
}

// Requesting returns the contributor extracted for this request, or nil
// for anonymous requests.
func Requesting(c *gin.Context) *domain.Contributor {
	v, ok := c.Get(contributorKey)
	if !ok {
		return nil
	}
	contributor, ok := v.(domain.Contributor)
	if !ok {
		return nil
	}
	return &contributor
}

// decodeBase64URL accepts both padded and unpadded base64url input,
// since gateways differ on padding.
func decodeBase64URL(raw string) ([]byte, error) {
	if strings.ContainsRune(raw, '=') {
		return base64.URLEncoding.DecodeString(raw)
	}
	return base64.RawURLEncoding.DecodeString(raw)
}
