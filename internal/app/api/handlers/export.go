package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	mw "github.com/IgorMikael1000/Motorista-Pro/internal/app/api/middleware"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/backup"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/response"
)

const restoreBodyLimit = 64 << 20

// ApiExportUserData streams the caller's records as a JSON document.
func ApiExportUserData(bak *backup.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := bak.ExportUser(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="motoristapro-export.json"`)
		c.JSON(http.StatusOK, data)
	}
}

// ApiImportUserData replaces the caller's own records with an uploaded
// export document.
func ApiImportUserData(bak *backup.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data backup.UserExport
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err := bak.ImportUser(c.Request.Context(), mw.UserIDFrom(c), &data); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "imported"}))
	}
}

// @Summary      Full backup (Admin)
// @Description  Streams a zip archive with one CSV per table.
// @Tags         Admin
// @Produce      application/zip
// @Success      200  {file}  binary
// @Router       /api/v1/admin/backup [get]
func ApiAdminBackup(bak *backup.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		archive, err := bak.DumpAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		name := fmt.Sprintf("motoristapro-backup-%s.zip", time.Now().Format("20060102-150405"))
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, "application/zip", archive)
	}
}

// ApiAdminRestore replays a backup archive. Rows are matched by primary or
// natural key and upserted.
func ApiAdminRestore(bak *backup.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, _, err := c.Request.FormFile("archive")
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeBadRequest, "missing archive upload"))
			return
		}
		defer file.Close()
		archive, err := io.ReadAll(io.LimitReader(file, restoreBodyLimit))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		report, err := bak.RestoreAll(c.Request.Context(), archive)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(report))
	}
}

func RegisterExportRoutes(r gin.IRouter, bak *backup.Service) {
	r.GET("/export", ApiExportUserData(bak))
	r.POST("/import", ApiImportUserData(bak))
}

func RegisterAdminBackupRoutes(r gin.IRouter, bak *backup.Service) {
	r.GET("/backup", ApiAdminBackup(bak))
	r.POST("/restore", ApiAdminRestore(bak))
}
