package apis

import (
	"strings"

	"invitation_backend/models"
	"invitation_backend/service"
	. "invitation_backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetOfferInfo godoc
//
//	@Summary	get offer info
//	@Tags		offers
//	@Produce	json
//	@Router		/offers/{name}/info [get]
//	@Param		name	path		string	true	"offer name"
//	@Success	200		{object}	OfferInfoResponse
//	@Failure	404		{object}	utils.HttpError
func GetOfferInfo(c *fiber.Ctx) error {
	name, err := offerNameFromPath(c)
	if err != nil {
		return err
	}

	offer, err := models.GetOfferByName(models.DB, name)
	if err != nil {
		return err
	}

	return c.JSON(OfferInfoResponse{
		Success: true,
		Data: OfferInfo{
			Name:           offer.Name,
			Title:          offer.Title,
			Description:    offer.Description,
			TotalCount:     offer.TotalCount,
			RemainingCount: offer.RemainingCount,
			IsActive:       offer.IsActive,
		},
	})
}

// ClaimCode godoc
//
//	@Summary	claim one invitation code
//	@Tags		offers
//	@Accept		json
//	@Produce	json
//	@Router		/offers/{name}/claim [post]
//	@Param		name	path		string			true	"offer name"
//	@Param		json	body		ClaimRequest	false	"json"
//	@Success	200		{object}	ClaimResponse
//	@Failure	400		{object}	utils.HttpError	"NO_CODES_AVAILABLE, INVALID_OFFER"
func ClaimCode(c *fiber.Ctx) error {
	name, err := offerNameFromPath(c)
	if err != nil {
		return err
	}

	var body ClaimRequest
	err = ValidateBody(c, &body)
	if err != nil {
		return err
	}

	// fall back to what the request itself reveals
	userIP := FirstNonEmpty(body.UserIP, GetRealIP(c))
	userAgent := FirstNonEmpty(body.UserAgent, c.Get(fiber.HeaderUserAgent))

	code, err := service.ClaimCode(name, userIP, userAgent)
	if err != nil {
		Logger.Warn("claim failed",
			zap.String("offer", name),
			zap.String("user_ip", userIP),
			zap.Error(err),
		)
		return err
	}

	Logger.Info("code claimed",
		zap.String("offer", name),
		zap.String("user_ip", userIP),
	)

	return c.JSON(ClaimResponse{
		Success: true,
		Data: ClaimData{
			Code:    code,
			Message: "invitation code issued",
		},
	})
}

// GetOfferStats godoc
//
//	@Summary	get offer usage statistics
//	@Tags		offers
//	@Produce	json
//	@Router		/offers/{name}/stats [get]
//	@Param		name	path		string	true	"offer name"
//	@Success	200		{object}	StatsResponse
//	@Failure	404		{object}	utils.HttpError
func GetOfferStats(c *fiber.Ctx) error {
	name, err := offerNameFromPath(c)
	if err != nil {
		return err
	}

	stats, err := service.GetOfferStats(name)
	if err != nil {
		return err
	}

	return c.JSON(StatsResponse{
		Success: true,
		Data:    *stats,
	})
}

func offerNameFromPath(c *fiber.Ctx) (string, error) {
	name := strings.TrimSpace(c.Params("name"))
	if name == "" {
		return "", BadRequest("offer name must not be empty")
	}
	return name, nil
}
