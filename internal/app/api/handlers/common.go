package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	mw "github.com/IgorMikael1000/Motorista-Pro/internal/app/api/middleware"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/account"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/period"
	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/response"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

// currentUser loads the authenticated account. On failure it writes the
// error response and returns nil; callers just return.
func currentUser(c *gin.Context, acct *account.Service) *models.User {
	user, err := acct.Get(c.Request.Context(), mw.UserIDFrom(c))
	if err != nil {
		c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeUnauthorized, "account not found"))
		return nil
	}
	return user
}

// rangeFromQuery resolves the period/anchor query params. Anything
// malformed falls back to the current period of the requested kind.
func rangeFromQuery(c *gin.Context) period.Range {
	kind := types.PeriodKind(c.DefaultQuery("period", string(types.PeriodKindWeek)))
	switch kind {
	case types.PeriodKindDay, types.PeriodKindWeek, types.PeriodKindMonth, types.PeriodKindYear:
	default:
		kind = types.PeriodKindWeek
	}
	return period.Resolve(kind, c.Query("anchor"), time.Now())
}

func intQuery(c *gin.Context, name string, def int) int {
	if v := c.Query(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
