package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

func ctxWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestRangeFromQueryDefaultsToCurrentWeek(t *testing.T) {
	r := rangeFromQuery(ctxWithQuery(""))
	assert.Equal(t, types.PeriodKindWeek, r.Kind)
	assert.Equal(t, 0, int(r.Start.Weekday()))
	assert.Equal(t, r.Start.AddDate(0, 0, 6), r.End)
}

func TestRangeFromQueryAnchorSnapsToSunday(t *testing.T) {
	// 2026-08-26 is a Wednesday; the week runs 23..29
	r := rangeFromQuery(ctxWithQuery("period=week&anchor=2026-08-26"))
	assert.Equal(t, "2026-08-23", r.Start.Format("2006-01-02"))
	assert.Equal(t, "2026-08-29", r.End.Format("2006-01-02"))
}

func TestRangeFromQueryRejectsUnknownKind(t *testing.T) {
	r := rangeFromQuery(ctxWithQuery("period=fortnight"))
	assert.Equal(t, types.PeriodKindWeek, r.Kind)
}

func TestRangeFromQueryMonth(t *testing.T) {
	r := rangeFromQuery(ctxWithQuery("period=month&anchor=2026-02"))
	assert.Equal(t, types.PeriodKindMonth, r.Kind)
	assert.Equal(t, "2026-02-01", r.Start.Format("2006-01-02"))
	assert.Equal(t, "2026-02-28", r.End.Format("2006-01-02"))
}

func TestIntQuery(t *testing.T) {
	c := ctxWithQuery("page=3&size=abc")
	assert.Equal(t, 3, intQuery(c, "page", 1))
	assert.Equal(t, 20, intQuery(c, "size", 20))
	assert.Equal(t, 1, intQuery(c, "missing", 1))
}
