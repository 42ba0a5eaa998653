package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// Assistant 跳转到外部学习助手，把用户的问题原样带过去
func Assistant(baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := url.Parse(baseURL)
		if err != nil || u.Host == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "助手地址未配置"})
			return
		}
		if q := c.Query("q"); q != "" {
			values := u.Query()
			values.Set("q", q)
			u.RawQuery = values.Encode()
		}
		c.Redirect(http.StatusFound, u.String())
	}
}
