package provider

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultTimeout 方向服务 HTTP 超时
const DefaultTimeout = 10 * time.Second

var stripPolicy = bluemonday.StrictPolicy()

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// plainText 去掉指引里的 HTML 标签 (Google 返回 "Turn <b>left</b>")
func plainText(s string) string {
	// 块级标签之间补空格，避免文字粘连
	s = strings.ReplaceAll(s, "<div", " <div")
	return strings.Join(strings.Fields(html.UnescapeString(stripPolicy.Sanitize(s))), " ")
}

// requestError 去掉错误里的请求 URL，Google 的 key 在查询参数里
func requestError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
