package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const ctxRealIP = "real_ip"

// RealIP resolves the caller's address once per request and stores it under
// "real_ip" for the rate limiter and logs. Proxy headers take precedence
// over the socket peer: CF-Connecting-IP first, then the left-most
// X-Forwarded-For entry, then whatever gin reports.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cf := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); cf != "" {
			if ip := net.ParseIP(cf); ip != nil {
				c.Set(ctxRealIP, ip.String())
				c.Next()
				return
			}
		}
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.Split(xff, ",")[0])
			if ip := net.ParseIP(first); ip != nil {
				c.Set(ctxRealIP, ip.String())
				c.Next()
				return
			}
		}
		c.Set(ctxRealIP, c.ClientIP())
		c.Next()
	}
}
