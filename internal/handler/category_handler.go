package handler

import (
	"net/http"
	"strings"

	"github.com/focuslog/internal/db"
	"github.com/gin-gonic/gin"
)

// categoryFeatures 把路径参数映射到各功能的分类集合
var categoryFeatures = map[string]string{
	"tasks":    db.CategoryFeatureTasks,
	"expenses": db.CategoryFeatureExpenses,
	"dsa":      db.CategoryFeatureDSA,
}

func resolveCategoryFeature(c *gin.Context) (string, bool) {
	feature, ok := categoryFeatures[c.Param("feature")]
	if !ok {
		respondError(c, http.StatusNotFound, "未知的分类功能")
		return "", false
	}
	return feature, true
}

// ListCategories 返回某功能的分类集合与当前过滤器
func (a *API) ListCategories(c *gin.Context) {
	feature, ok := resolveCategoryFeature(c)
	if !ok {
		return
	}

	names, err := a.categories.List(feature)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取分类失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories":    names,
		"active_filter": activeFilter(c, feature),
	})
}

// AddCategory 追加自定义分类；空名或重名按 no-op 处理
func (a *API) AddCategory(c *gin.Context) {
	feature, ok := resolveCategoryFeature(c)
	if !ok {
		return
	}

	var payload struct {
		Name string `json:"name"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	added, err := a.categories.Add(feature, payload.Name)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "创建分类失败")
		return
	}

	names, err := a.categories.List(feature)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取分类失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"added": added, "categories": names})
}

// DeleteCategory 删除自定义分类并级联改写引用记录
// 默认分类为 no-op；若删除的正是当前过滤器则回退到 All
func (a *API) DeleteCategory(c *gin.Context) {
	feature, ok := resolveCategoryFeature(c)
	if !ok {
		return
	}

	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		respondError(c, http.StatusBadRequest, "缺少分类名称")
		return
	}

	deleted, err := a.categories.Delete(feature, name)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "删除分类失败")
		return
	}

	if deleted && activeFilter(c, feature) == name {
		setActiveFilter(c, feature, "All")
	}

	names, err := a.categories.List(feature)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取分类失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted":       deleted,
		"categories":    names,
		"active_filter": activeFilter(c, feature),
	})
}
