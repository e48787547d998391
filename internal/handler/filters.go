package handler

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const filterSessionPrefix = "active_filter:"

// sessionFromContext 在未挂载会话中间件时返回 nil，避免单测里 panic。
func sessionFromContext(c *gin.Context) sessions.Session {
	value, ok := c.Get(sessions.DefaultKey)
	if !ok {
		return nil
	}
	session, ok := value.(sessions.Session)
	if !ok {
		return nil
	}
	return session
}

// activeFilter 返回某功能当前生效的分类过滤器，缺省为 All。
func activeFilter(c *gin.Context, feature string) string {
	session := sessionFromContext(c)
	if session == nil {
		return "All"
	}
	if value, ok := session.Get(filterSessionPrefix + feature).(string); ok && value != "" {
		return value
	}
	return "All"
}

// setActiveFilter 把分类过滤器写入会话，分类被删除时据此回退到 All。
func setActiveFilter(c *gin.Context, feature, value string) {
	session := sessionFromContext(c)
	if session == nil {
		return
	}
	session.Set(filterSessionPrefix+feature, value)
	_ = session.Save()
}
