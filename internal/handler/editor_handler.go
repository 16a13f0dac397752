package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guardstation/internal/content"
	"github.com/guardstation/internal/locale"
	"github.com/guardstation/internal/service"
)

type pageRequest struct {
	Title string `json:"title"`
}

type sectionRequest struct {
	Type string `json:"type"`
}

type moveRequest struct {
	Direction string `json:"direction"`
}

type columnRequest struct {
	Header string `json:"header"`
}

func respondWorkspace(c *gin.Context, ws *service.Workspace) {
	c.JSON(http.StatusOK, gin.H{"workspace": ws})
}

func respondCreated(c *gin.Context, id string, ws *service.Workspace) {
	c.JSON(http.StatusCreated, gin.H{"id": id, "workspace": ws})
}

// GetContent 返回当前用户的草稿、线上版本以及是否存在未发布变更。
func (a *API) GetContent(c *gin.Context) {
	ws, err := a.editor.Workspace(c.Request.Context(), currentUser(c).Username)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondWorkspace(c, ws)
}

// UpdateGlobal overwrites brand, contact and theme fields.
func (a *API) UpdateGlobal(c *gin.Context) {
	var req content.Globals
	if !bindJSON(c, &req, a.text(c, locale.MsgBadRequest)) {
		return
	}
	a.applyEdit(c, func(user string) (*service.Workspace, error) {
		return a.editor.UpdateGlobal(c.Request.Context(), user, req)
	})
}

// CreatePage adds a page; its slug is derived from the title.
func (a *API) CreatePage(c *gin.Context) {
	var req pageRequest
	if !bindJSON(c, &req, a.text(c, locale.MsgBadRequest)) {
		return
	}
	id, ws, err := a.editor.AddPage(c.Request.Context(), currentUser(c).Username, req.Title)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondCreated(c, id, ws)
}

// RenamePage changes a page title; the slug stays.
func (a *API) RenamePage(c *gin.Context) {
	var req pageRequest
	if !bindJSON(c, &req, a.text(c, locale.MsgBadRequest)) {
		return
	}
	a.applyEdit(c, func(user string) (*service.Workspace, error) {
		return a.editor.RenamePage(c.Request.Context(), user, c.Param("id"), req.Title)
	})
}

// DeletePage removes a page. The home page is refused.
func (a *API) DeletePage(c *gin.Context) {
	a.applyEdit(c, func(user string) (*service.Workspace, error) {
		return a.editor.DeletePage(c.Request.Context(), user, c.Param("id"))
	})
}

// CreateSection appends a section with starter content.
func (a *API) CreateSection(c *gin.Context) {
	var req sectionRequest
	if !bindJSON(c, &req, a.text(c, locale.MsgBadRequest)) {
		return
	}
	sectionType, ok := content.ParseSectionType(strings.TrimSpace(req.Type))
	if !ok {
		respondError(c, http.StatusBadRequest, a.text(c, locale.MsgSectionTypeInvalid))
		return
	}
	id, ws, err := a.editor.AddSection(c.Request.Context(), currentUser(c).Username, c.Param("id"), sectionType)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondCreated(c, id, ws)
}

// UpdateSection shallow-merges the request body into the section content.
func (a *API) UpdateSection(c *gin.Context) {
	var patch json.RawMessage
	if !bindJSON(c, &patch, a.text(c, locale.MsgSectionPatchInvalid)) {
		return
	}
	a.applyEdit(c, func(user string) (*service.Workspace, error) {
		return a.editor.UpdateSection(c.Request.Context(), user, c.Param("id"), c.Param("sid"), patch)
	})
}

// DeleteSection removes a section.
func (a *API) DeleteSection(c *gin.Context) {
	a.applyEdit(c, func(user string) (*service.Workspace, error) {
		return a.editor.RemoveSection(c.Request.Context(), user, c.Param("id"), c.Param("sid"))
	})
}

// MoveSection swaps a section with its neighbour. Moving past either end is
// accepted and changes nothing.
func (a *API) MoveSection(c *gin.Context) {
	var req moveRequest
	if !bindJSON(c, &req, a.text(c, locale.MsgBadRequest)) {
		return
	}
	dir, ok := content.ParseDirection(req.Direction)
	if !ok {
		respondError(c, http.StatusBadRequest, a.text(c, locale.MsgBadRequest))
		return
	}
	a.applyEdit(c, func(user string) (*service.Workspace, error) {
		return a.editor.MoveSectionByID(c.Request.Context(), user, c.Param("id"), c.Param("sid"), dir)
	})
}

// AddSlide appends a slide to a hero slider.
func (a *API) AddSlide(c *gin.Context) {
	id, ws, err := a.editor.AddSlide(c.Request.Context(), currentUser(c).Username, c.Param("id"), c.Param("sid"))
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondCreated(c, id, ws)
}

// DeleteSlide removes a slide; the last one is kept.
func (a *API) DeleteSlide(c *gin.Context) {
	a.applyEdit(c, func(user string) (*service.Workspace, error) {
		return a.editor.RemoveSlide(c.Request.Context(), user, c.Param("id"), c.Param("sid"), c.Param("item"))
	})
}

// AddFAQ appends an empty question.
func (a *API) AddFAQ(c *gin.Context) {
	id, ws, err := a.editor.AddFAQ(c.Request.Context(), currentUser(c).Username, c.Param("id"), c.Param("sid"))
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondCreated(c, id, ws)
}

// DeleteFAQ removes a question.
func (a *API) DeleteFAQ(c *gin.Context) {
	a.applyEdit(c, func(user string) (*service.Workspace, error) {
		return a.editor.RemoveFAQ(c.Request.Context(), user, c.Param("id"), c.Param("sid"), c.Param("item"))
	})
}

// AddPriceColumn appends a column; an empty body uses the default header.
func (a *API) AddPriceColumn(c *gin.Context) {
	var req columnRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req, a.text(c, locale.MsgBadRequest)) {
		return
	}
	a.applyEdit(c, func(user string) (*service.Workspace, error) {
		return a.editor.AddPriceColumn(c.Request.Context(), user, c.Param("id"), c.Param("sid"), req.Header)
	})
}

// DeletePriceColumn removes the column at :index.
func (a *API) DeletePriceColumn(c *gin.Context) {
	index, err := parseIndexParam(c, "index")
	if err != nil {
		respondError(c, http.StatusBadRequest, a.text(c, locale.MsgBadRequest))
		return
	}
	a.applyEdit(c, func(user string) (*service.Workspace, error) {
		return a.editor.RemovePriceColumn(c.Request.Context(), user, c.Param("id"), c.Param("sid"), index)
	})
}

// AddPriceRow appends a row of placeholder cells.
func (a *API) AddPriceRow(c *gin.Context) {
	a.applyEdit(c, func(user string) (*service.Workspace, error) {
		return a.editor.AddPriceRow(c.Request.Context(), user, c.Param("id"), c.Param("sid"))
	})
}

// DeletePriceRow removes the row at :index.
func (a *API) DeletePriceRow(c *gin.Context) {
	index, err := parseIndexParam(c, "index")
	if err != nil {
		respondError(c, http.StatusBadRequest, a.text(c, locale.MsgBadRequest))
		return
	}
	a.applyEdit(c, func(user string) (*service.Workspace, error) {
		return a.editor.RemovePriceRow(c.Request.Context(), user, c.Param("id"), c.Param("sid"), index)
	})
}

// Publish 将草稿整体发布为线上版本。
func (a *API) Publish(c *gin.Context) {
	ws, err := a.editor.Publish(c.Request.Context(), currentUser(c).Username)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   a.text(c, locale.MsgPublished),
		"workspace": ws,
	})
}

// Discard drops the user's draft.
func (a *API) Discard(c *gin.Context) {
	a.applyEdit(c, func(user string) (*service.Workspace, error) {
		return a.editor.Discard(c.Request.Context(), user)
	})
}

func (a *API) applyEdit(c *gin.Context, fn func(user string) (*service.Workspace, error)) {
	ws, err := fn(currentUser(c).Username)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	respondWorkspace(c, ws)
}
