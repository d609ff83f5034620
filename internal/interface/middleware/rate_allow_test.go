package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAllowPrivateIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	allow := AllowPrivateIP()

	cases := []struct {
		ip   string
		want bool
	}{
		{"192.168.1.20", true},
		{"10.0.0.5", true},
		{"172.16.4.1", true},
		{"127.0.0.1", true},
		{"8.8.8.8", false},
		{"203.0.113.9", false},
		{"not-an-ip", false},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(ctxRealIP, tc.ip)
		assert.Equal(t, tc.want, allow(c), tc.ip)
	}
}
