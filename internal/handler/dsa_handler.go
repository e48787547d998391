package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/focuslog/internal/db"
	"github.com/focuslog/internal/service"
	"github.com/gin-gonic/gin"
)

type dsaRecordPayload struct {
	ID       uint   `json:"id"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

type dsaInputPayload struct {
	Date     string `json:"date"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

func dsaRecordToPayload(record db.DSARecord) dsaRecordPayload {
	return dsaRecordPayload{
		ID:       record.ID,
		Date:     record.Date,
		Title:    record.Title,
		Category: record.Category,
	}
}

func handleDSAError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDSARecordNotFound):
		respondError(c, http.StatusNotFound, "刷题记录不存在")
	case errors.Is(err, service.ErrDSATitleRequired), errors.Is(err, service.ErrInvalidDate):
		respondError(c, http.StatusBadRequest, "请求参数不合法")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}

// ListDSALogs 返回按日分组的刷题记录
func (a *API) ListDSALogs(c *gin.Context) {
	groups, err := a.dsa.GroupByDate()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取刷题记录失败")
		return
	}

	names, err := a.categories.List(db.CategoryFeatureDSA)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取分类失败")
		return
	}

	groupItems := make([]gin.H, 0, len(groups))
	for _, group := range groups {
		items := make([]dsaRecordPayload, 0, len(group.Records))
		for _, record := range group.Records {
			items = append(items, dsaRecordToPayload(record))
		}
		groupItems = append(groupItems, gin.H{"date": group.Date, "records": items})
	}

	c.JSON(http.StatusOK, gin.H{
		"groups":     groupItems,
		"categories": names,
		"today":      service.Today(),
	})
}

// CreateDSARecord 追加刷题记录，日期缺省为今天
func (a *API) CreateDSARecord(c *gin.Context) {
	var payload dsaInputPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	record, err := a.dsa.Add(service.DSAInput{
		Date:     payload.Date,
		Title:    payload.Title,
		Category: payload.Category,
	})
	if err != nil {
		handleDSAError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": dsaRecordToPayload(*record)})
}

// UpdateDSARecord 更新刷题记录
func (a *API) UpdateDSARecord(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的记录ID")
		return
	}

	var payload dsaInputPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	record, err := a.dsa.Update(id, service.DSAInput{
		Date:     payload.Date,
		Title:    payload.Title,
		Category: payload.Category,
	})
	if err != nil {
		handleDSAError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": dsaRecordToPayload(*record)})
}

// DeleteDSARecord 删除刷题记录
func (a *API) DeleteDSARecord(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的记录ID")
		return
	}

	if err := a.dsa.Delete(id); err != nil {
		handleDSAError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GetDSACalendar 返回月历统计，年月缺省为当前月份
func (a *API) GetDSACalendar(c *gin.Context) {
	now := time.Now().In(time.Local)
	year := parseIntQuery(c, "year", now.Year())
	month := parseIntQuery(c, "month", int(now.Month()))

	calendar, err := a.dsa.MonthlyCalendar(year, month)
	if err != nil {
		handleDSAError(c, err)
		return
	}

	days := make([]gin.H, 0, len(calendar.Days))
	for _, day := range calendar.Days {
		days = append(days, gin.H{"date": day.Date, "count": day.Count})
	}

	prevYear, prevMonth := service.PrevMonth(year, month)
	nextYear, nextMonth := service.NextMonth(year, month)

	c.JSON(http.StatusOK, gin.H{
		"calendar": gin.H{
			"year":  calendar.Year,
			"month": calendar.Month,
			"label": calendar.Label,
			"days":  days,
		},
		"prev": gin.H{"year": prevYear, "month": prevMonth},
		"next": gin.H{"year": nextYear, "month": nextMonth},
	})
}
