package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/club-roster-api/internal/models"
	"github.com/club-roster-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RosterHandler handles member, group and settings endpoints
type RosterHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewRosterHandler creates a new RosterHandler
func NewRosterHandler(services *service.Services, log zerolog.Logger) *RosterHandler {
	return &RosterHandler{
		services: services,
		log:      log.With().Str("handler", "roster").Logger(),
	}
}

// ListMembers handles GET /api/members
func (h *RosterHandler) ListMembers(c *gin.Context) {
	members, err := h.services.Roster.ListMembers(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list members")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list members"})
		return
	}
	if members == nil {
		members = []*models.Member{}
	}
	c.JSON(http.StatusOK, members)
}

// CreateMember handles POST /api/members
func (h *RosterHandler) CreateMember(c *gin.Context) {
	var member models.Member
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Roster.CreateMember(c.Request.Context(), &member); err != nil {
		if errors.Is(err, service.ErrFutureDateOfBirth) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date of Birth cannot be in the future"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, member)
}

// UpdateMember handles PUT /api/members/:id
func (h *RosterHandler) UpdateMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	var member models.Member
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	member.ID = id

	if err := h.services.Roster.UpdateMember(c.Request.Context(), &member); err != nil {
		if errors.Is(err, service.ErrFutureDateOfBirth) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date of Birth cannot be in the future"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member updated"})
}

// DeleteMember handles DELETE /api/members/:id
func (h *RosterHandler) DeleteMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	if err := h.services.Roster.DeleteMember(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Int("member_id", id).Msg("Failed to delete member")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}

// SendWelcome handles POST /api/members/:id/send-welcome
func (h *RosterHandler) SendWelcome(c *gin.Context) {
	var req struct {
		To      string `json:"to"`
		CC      string `json:"cc"`
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := service.WelcomeEmail{
		To:      req.To,
		CC:      req.CC,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := h.services.Email.SendWelcome(c.Request.Context(), email); err != nil {
		h.log.Error().Err(err).Str("to", req.To).Msg("Failed to send welcome email")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}

// ListGroups handles GET /api/groups
func (h *RosterHandler) ListGroups(c *gin.Context) {
	groups, err := h.services.Roster.ListGroups(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list groups")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list groups"})
		return
	}
	if groups == nil {
		groups = []*models.Group{}
	}
	c.JSON(http.StatusOK, groups)
}

// CreateGroup handles POST /api/groups
func (h *RosterHandler) CreateGroup(c *gin.Context) {
	var group models.Group
	if err := c.ShouldBindJSON(&group); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Roster.CreateGroup(c.Request.Context(), &group); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, group)
}

// UpdateGroup handles PUT /api/groups/:id
func (h *RosterHandler) UpdateGroup(c *gin.Context) {
	var req struct {
		Trainer string `json:"trainer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := models.Group{ID: c.Param("id"), Trainer: req.Trainer}
	if err := h.services.Roster.UpdateGroup(c.Request.Context(), &group); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group updated", "id": group.ID, "trainer": group.Trainer})
}

// DeleteGroup handles DELETE /api/groups/:id
func (h *RosterHandler) DeleteGroup(c *gin.Context) {
	id := c.Param("id")

	if err := h.services.Roster.DeleteGroup(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrGroupHasMembers) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete group with assigned members"})
			return
		}
		h.log.Error().Err(err).Str("group_id", id).Msg("Failed to delete group")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group deleted"})
}

// GetSettings handles GET /api/settings
func (h *RosterHandler) GetSettings(c *gin.Context) {
	settings, err := h.services.Roster.GetSettings(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/settings
func (h *RosterHandler) UpdateSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Roster.UpdateSettings(c.Request.Context(), settings); err != nil {
		h.log.Error().Err(err).Msg("Failed to update settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
}
