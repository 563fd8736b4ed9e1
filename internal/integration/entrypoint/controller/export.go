package controller

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

const defaultExportFormat = "csv"

// ExportController handles statement export endpoints.
type ExportController struct {
	exportUseCase   *transaction.ExportStatementUseCase
	linkUseCase     *transaction.CreateExportLinkUseCase
	downloadUseCase *transaction.DownloadExportUseCase
	publicURL       string
}

// NewExportController creates a new export controller instance.
func NewExportController(
	exportUseCase *transaction.ExportStatementUseCase,
	linkUseCase *transaction.CreateExportLinkUseCase,
	downloadUseCase *transaction.DownloadExportUseCase,
	publicURL string,
) *ExportController {
	return &ExportController{
		exportUseCase:   exportUseCase,
		linkUseCase:     linkUseCase,
		downloadUseCase: downloadUseCase,
		publicURL:       publicURL,
	}
}

// ExportCSV handles GET /transactions/export requests with an inline CSV body.
func (c *ExportController) ExportCSV(ctx *gin.Context) {
	output, err := c.exportUseCase.Execute(ctx.Request.Context(), transaction.ExportStatementInput{Format: defaultExportFormat})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

// ExportXLSX handles GET /transactions/export/xlsx requests.
func (c *ExportController) ExportXLSX(ctx *gin.Context) {
	output, err := c.exportUseCase.Execute(ctx.Request.Context(), transaction.ExportStatementInput{Format: "xlsx"})
	if err != nil {
		handleError(ctx, err)
		return
	}

	attachment(ctx, output)
}

// CreateLink handles POST /transactions/export/link requests.
func (c *ExportController) CreateLink(ctx *gin.Context) {
	var req dto.CreateExportLinkRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
			return
		}
	}
	if req.Format == "" {
		req.Format = defaultExportFormat
	}

	deviceID, _ := middleware.GetDeviceIDFromContext(ctx)
	output, err := c.linkUseCase.Execute(ctx.Request.Context(), transaction.CreateExportLinkInput{
		DeviceID: deviceID,
		Format:   req.Format,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ExportLinkResponse{
		URL:       fmt.Sprintf("%s/api/v1/transactions/export/download?token=%s", c.publicURL, url.QueryEscape(output.Token)),
		Token:     output.Token,
		Format:    output.Format,
		ExpiresAt: output.ExpiresAt,
	})
}

// Download handles GET /transactions/export/download?token= requests.
func (c *ExportController) Download(ctx *gin.Context) {
	output, err := c.downloadUseCase.Execute(ctx.Request.Context(), transaction.DownloadExportInput{
		Token: ctx.Query("token"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	attachment(ctx, output)
}

func attachment(ctx *gin.Context, output *transaction.ExportStatementOutput) {
	slog.Debug("Serving statement export", "file", output.FileName, "rows", output.RowCount)
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, output.FileName))
	ctx.Header("Cache-Control", "no-store")
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}
