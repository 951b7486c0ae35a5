package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/billhub/billhub/internal/application/service"
	"github.com/billhub/billhub/internal/domain/entity"
	"github.com/billhub/billhub/internal/router"
	"github.com/billhub/billhub/internal/view"
)

const contentTypeHTML = "text/html; charset=utf-8"

func knownPath(path string) bool {
	switch path {
	case router.PathLogin, router.PathBills, router.PathNewBill, router.PathDashboard:
		return true
	}
	return false
}

func (a *App) html(c *gin.Context, status int, document string) {
	c.Data(status, contentTypeHTML, []byte(document))
}

// handleStart serves the initial page.
func (a *App) handleStart(c *gin.Context) {
	a.html(c, http.StatusOK, a.nav.Start())
}

// handleNavigate dispatches any page path through the router. Unmapped
// paths render the 404 view.
func (a *App) handleNavigate(c *gin.Context) {
	path := c.Request.URL.Path
	document := a.nav.OnNavigate(path)

	status := http.StatusOK
	switch {
	case !knownPath(path):
		status = http.StatusNotFound
	case a.nav.CurrentPath() == router.PathLogin && path != router.PathLogin:
		// The role gate resolved the navigation back to the login page.
		status = http.StatusForbidden
	}
	a.html(c, status, document)
}

// handleLogin stores the submitted identity as the session record and
// navigates to the role's landing page.
func (a *App) handleLogin(c *gin.Context) {
	session := entity.Session{
		Type:  c.PostForm("type"),
		Email: c.PostForm("email"),
	}
	a.sessions.SetItem(entity.SessionKey, session.Encode())

	a.logger.Info("user logged in",
		zap.String("type", session.Type),
		zap.String("email", session.Email))

	target := router.PathBills
	if session.IsAdmin() {
		target = router.PathDashboard
	}
	a.html(c, http.StatusOK, a.nav.OnNavigate(target))
}

// handleLogout clears the session and returns to the login page.
func (a *App) handleLogout(c *gin.Context) {
	a.sessions.RemoveItem(entity.SessionKey)
	a.html(c, http.StatusOK, a.nav.OnNavigate(router.PathLogin))
}

func (a *App) handleBack(c *gin.Context) {
	a.html(c, http.StatusOK, a.nav.Back())
}

func (a *App) handleForward(c *gin.Context) {
	a.html(c, http.StatusOK, a.nav.Forward())
}

// handleSubmitBill processes the new bill form. When a receipt file rides
// along it is uploaded first, then the bill record is submitted.
func (a *App) handleSubmitBill(c *gin.Context) {
	ctx := c.Request.Context()

	if fileHeader, err := c.FormFile("file"); err == nil {
		src, err := fileHeader.Open()
		if err != nil {
			a.renderError(c, err)
			return
		}
		defer src.Close()

		if err := a.newBill.UploadReceipt(ctx, fileHeader.Filename, src); err != nil {
			a.renderError(c, err)
			return
		}
	}

	form := service.BillForm{
		Type:       c.PostForm("type"),
		Name:       c.PostForm("name"),
		Amount:     c.PostForm("amount"),
		Date:       c.PostForm("date"),
		VAT:        c.PostForm("vat"),
		Pct:        c.PostForm("pct"),
		Commentary: c.PostForm("commentary"),
	}

	document, err := a.newBill.Submit(ctx, form)
	if err != nil {
		a.renderError(c, err)
		return
	}
	a.html(c, http.StatusOK, document)
}

// handleToggle folds or unfolds one dashboard bucket.
func (a *App) handleToggle(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		a.renderError(c, err)
		return
	}

	bills, err := a.dashboard.GetBillsAllUsers(c.Request.Context())
	if err != nil {
		a.renderError(c, err)
		return
	}
	body := a.dashboard.ShowTickets(bills, index)
	a.html(c, http.StatusOK, view.Layout("Billed - Dashboard", "", body))
}

// handleEditTicket opens or closes the detail pane for one bill.
func (a *App) handleEditTicket(c *gin.Context) {
	bill, bills, ok := a.findBill(c)
	if !ok {
		return
	}
	body := a.dashboard.EditTicket(bill, bills)
	a.html(c, http.StatusOK, view.Layout("Billed - Dashboard", "", body))
}

// handleAccept accepts a pending bill and lands back on the dashboard.
func (a *App) handleAccept(c *gin.Context) {
	bill, _, ok := a.findBill(c)
	if !ok {
		return
	}

	document, err := a.dashboard.AcceptBill(c.Request.Context(), bill)
	if err != nil {
		a.renderError(c, err)
		return
	}
	a.html(c, http.StatusOK, document)
}

// handleRefuse refuses a pending bill with the admin's commentary.
func (a *App) handleRefuse(c *gin.Context) {
	bill, _, ok := a.findBill(c)
	if !ok {
		return
	}

	document, err := a.dashboard.RefuseBill(c.Request.Context(), bill, c.PostForm("commentAdmin"))
	if err != nil {
		a.renderError(c, err)
		return
	}
	a.html(c, http.StatusOK, document)
}

// handleReceipt renders the receipt preview modal for one bill.
func (a *App) handleReceipt(c *gin.Context) {
	bill, _, ok := a.findBill(c)
	if !ok {
		return
	}
	a.html(c, http.StatusOK, a.dashboard.ShowReceipt(bill))
}

// handleExport streams all bills as an xlsx workbook.
func (a *App) handleExport(c *gin.Context) {
	bills, err := a.dashboard.GetBillsAllUsers(c.Request.Context())
	if err != nil {
		a.renderError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bills.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := a.exporter.WriteWorkbook(c.Writer, bills); err != nil {
		a.logger.Error("workbook export failed", zap.Error(err))
	}
}

// findBill fetches all bills and picks the one addressed by the :id route
// parameter. It writes the error response itself when the lookup fails.
func (a *App) findBill(c *gin.Context) (entity.Bill, []entity.Bill, bool) {
	bills, err := a.dashboard.GetBillsAllUsers(c.Request.Context())
	if err != nil {
		a.renderError(c, err)
		return entity.Bill{}, nil, false
	}

	id := c.Param("id")
	for _, bill := range bills {
		if bill.ID == id {
			return bill, bills, true
		}
	}

	a.html(c, http.StatusNotFound, view.Layout("404", "", view.NotFoundPage()))
	return entity.Bill{}, nil, false
}

// renderError surfaces a failure as the error view. The message travels
// verbatim so store rejections keep their "Erreur <code>" wording.
func (a *App) renderError(c *gin.Context, err error) {
	a.logger.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	a.html(c, http.StatusOK, view.Layout("Erreur", "", view.ErrorPage(err.Error())))
}
