package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pitchbook/internal/usecase/queries"
)

type VoucherHandler struct {
	vouchers *queries.VoucherQueryService
}

func NewVoucherHandler(vouchers *queries.VoucherQueryService) *VoucherHandler {
	return &VoucherHandler{vouchers: vouchers}
}

// @Summary Check voucher
// @Description Check whether a voucher code would currently apply
// @Tags vouchers
// @Produce json
// @Param code query string true "Voucher code"
// @Success 200 {object} queries.VoucherCheckView
// @Failure 400 {object} map[string]string
// @Router /vouchers/check [get]
func (h *VoucherHandler) CheckVoucher(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'code' is required",
		})
		return
	}

	view, err := h.vouchers.Check(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, view)
}
