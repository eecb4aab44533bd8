package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/couplesync/internal/services"
)

// IssuePartnerCode mints a fresh pairing code for the caller, invalidating
// any previous one. Linked users have no code to hand out.
func (handler *Handler) IssuePartnerCode(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	_, hasPartner, err := handler.relationshipService.Partner(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to issue code")
	}
	if hasPartner {
		return apiError(c, fiber.StatusConflict, "already linked to a partner")
	}

	code, err := handler.codeService.IssueCode(user.ID)
	if err != nil {
		if errors.Is(err, services.ErrCodeGenerationExhausted) {
			return apiError(c, fiber.StatusInternalServerError, "could not generate a unique code, try again")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to issue code")
	}

	response := fiber.Map{
		"code":      code.Code,
		"issued_at": code.IssuedAt,
	}
	if handler.partnerCodeTTL > 0 {
		response["expires_at"] = code.IssuedAt.Add(handler.partnerCodeTTL)
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

func (handler *Handler) LinkPartner(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := linkPartnerInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	relationship, err := handler.relationshipService.Link(user.ID, input.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCode):
			return apiError(c, fiber.StatusNotFound, "partner code not found")
		case errors.Is(err, services.ErrSelfLink):
			return apiError(c, fiber.StatusBadRequest, "cannot link your own code")
		case errors.Is(err, services.ErrAlreadyLinked):
			return apiError(c, fiber.StatusConflict, "already linked to a partner")
		default:
			return apiError(c, fiber.StatusInternalServerError, "linking failed")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"relationship_id": relationship.ID,
		"established_at":  relationship.EstablishedAt.In(handler.location),
	})
}

// PartnerStatus reports the caller's pairing state: the partner when linked,
// otherwise the live code if one exists.
func (handler *Handler) PartnerStatus(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	partnerID, hasPartner, err := handler.relationshipService.Partner(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load partner status")
	}

	if hasPartner {
		partner, err := handler.authService.FindByID(partnerID)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load partner status")
		}
		relationship, _, err := handler.relationshipService.RelationshipFor(user.ID)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load partner status")
		}
		return c.JSON(fiber.Map{
			"linked": true,
			"partner": fiber.Map{
				"id":           partner.ID,
				"display_name": partner.DisplayName(),
			},
			"established_at": relationship.EstablishedAt.In(handler.location),
		})
	}

	response := fiber.Map{"linked": false}
	code, found, err := handler.codeService.LiveCodeForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load partner status")
	}
	if found {
		response["code"] = code.Code
		response["issued_at"] = code.IssuedAt
		if handler.partnerCodeTTL > 0 {
			response["expires_at"] = code.IssuedAt.Add(handler.partnerCodeTTL)
		}
	}
	return c.JSON(response)
}
