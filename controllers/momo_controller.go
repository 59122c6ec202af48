package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/neeste/neeste-api/config"
	"github.com/neeste/neeste-api/models"
	"github.com/neeste/neeste-api/services"
	"gorm.io/gorm"
)

// InitiateMomoRequest represents the request body for starting a payment
type InitiateMomoRequest struct {
	OrderID     uint   `json:"order_id" binding:"required"`
	PayerMsisdn string `json:"payer_msisdn" binding:"required"`
}

// InitiateMomoPayment handles POST /api/momo/initiate/ - submits a
// request-to-pay for an order and records the provider reference. The order
// status itself does not change; it advances later via poll or callback.
func InitiateMomoPayment(c *gin.Context) {
	var req InitiateMomoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Missing order_id or payer_msisdn"))
		return
	}
	req.PayerMsisdn = strings.TrimSpace(req.PayerMsisdn)
	if req.PayerMsisdn == "" {
		c.JSON(http.StatusBadRequest, errorResponse("VALIDATION_ERROR", "Missing order_id or payer_msisdn"))
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, req.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("ORDER_NOT_FOUND", "Order not found"))
		return
	}

	if cfg := config.GetConfig(); cfg != nil && !cfg.HasMomoCredentials() {
		c.JSON(http.StatusInternalServerError, errorResponse("CONFIG_ERROR", "Mobile money credentials are not configured"))
		return
	}

	referenceID, _, _, err := services.GetMoMoService().RequestToPay(
		order.TotalAmount,
		"UGX",
		req.PayerMsisdn,
		order.Reference,
		fmt.Sprintf("Pay %s", order.Reference),
		"Neesté Order",
	)
	if err != nil {
		c.JSON(http.StatusBadGateway, errorResponse("UPSTREAM_ERROR", err.Error()))
		return
	}

	updates := map[string]interface{}{
		"momo_reference_id": referenceID,
		"momo_status":       "PENDING",
	}
	if err := db.Model(&order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to record payment reference"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id":     order.ID,
		"reference_id": referenceID,
		"status":       "PENDING",
	})
}

// MomoStatus handles GET /api/momo/status/:reference_id/ - polls the provider
// for the payment state, advances the order if the payment succeeded, and
// returns download links for paid digital items.
func MomoStatus(c *gin.Context) {
	referenceID := c.Param("reference_id")

	db := config.GetDB()
	var order models.Order
	if err := db.Where("momo_reference_id = ?", referenceID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("ORDER_NOT_FOUND", "No order for that reference"))
		return
	}

	_, body, err := services.GetMoMoService().GetRequestStatus(referenceID)
	if err != nil {
		c.JSON(http.StatusBadGateway, errorResponse("UPSTREAM_ERROR", err.Error()))
		return
	}

	momoStatus := applyProviderStatus(db, &order, body)

	// Re-read so a transition won by a concurrent confirmation is reflected
	if err := db.First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("DATABASE_ERROR", "Failed to reload order"))
		return
	}

	links := downloadLinks(c, db, &order)
	c.JSON(http.StatusOK, gin.H{
		"order_id":       order.ID,
		"order_status":   order.Status,
		"momo_status":    momoStatus,
		"download_links": links,
	})
}

// MomoCallback handles POST /api/momo/callback/ - the provider-initiated
// webhook. The payload's own status field is never trusted: the reference id
// is extracted and the provider is re-polled for the authoritative state.
// Always answers 200 OK, even for unknown references, so the provider does
// not retry-storm us.
func MomoCallback(c *gin.Context) {
	var payload struct {
		ReferenceID string `json:"referenceId"`
	}
	_ = c.ShouldBindJSON(&payload)

	referenceID := payload.ReferenceID
	if referenceID == "" {
		referenceID = c.GetHeader("X-Reference-Id")
	}

	if referenceID != "" {
		db := config.GetDB()
		var order models.Order
		if err := db.Where("momo_reference_id = ?", referenceID).First(&order).Error; err == nil {
			if _, body, err := services.GetMoMoService().GetRequestStatus(referenceID); err == nil {
				applyProviderStatus(db, &order, body)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// applyProviderStatus records the provider's reported status on the order and,
// on SUCCESSFUL, performs the CREATED->PAID transition. Token issuance and the
// payment notification fire only when this call's conditional update wins, so
// concurrent poll and callback confirmations cannot double-issue either.
// Returns the uppercased provider status.
func applyProviderStatus(db *gorm.DB, order *models.Order, body map[string]interface{}) string {
	status, _ := body["status"].(string)
	status = strings.ToUpper(status)

	updates := map[string]interface{}{"momo_status": status}
	if ftid, ok := body["financialTransactionId"]; ok && ftid != nil {
		updates["momo_financial_transaction_id"] = fmt.Sprintf("%v", ftid)
	}
	if err := db.Model(order).Updates(updates).Error; err != nil {
		// Informational fields only; the paid transition below is what matters
		log.Printf("warning: failed to record momo status: %v", err)
	}

	if status == "SUCCESSFUL" {
		transitioned, err := services.MarkOrderPaid(db, order)
		if err != nil {
			log.Printf("warning: paid transition incomplete: %v", err)
		}
		if transitioned {
			services.EmitNotification(db, models.NotificationPaymentReceived,
				fmt.Sprintf("Payment - Order #%s", order.Reference),
				fmt.Sprintf("%d UGX from %s", order.TotalAmount, order.FullName),
				"/admin/orders")
		}
	}
	return status
}

// downloadLinks lists the digital download URLs for a paid order
func downloadLinks(c *gin.Context, db *gorm.DB, order *models.Order) []gin.H {
	links := []gin.H{}
	if !order.IsPaid() {
		return links
	}

	var tokens []models.DigitalAccessToken
	if err := db.Preload("Product").Where("order_id = ?", order.ID).Find(&tokens).Error; err != nil {
		return links
	}
	for _, token := range tokens {
		links = append(links, gin.H{
			"product": token.Product.Name,
			"url":     absoluteURL(c, fmt.Sprintf("/api/download/%s/", token.Token)),
		})
	}
	return links
}
