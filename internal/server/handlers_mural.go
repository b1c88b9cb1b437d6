package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avenir-oabms/relatorios-unificados/internal/mural"
)

type avisoRequest struct {
	Titulo   string `json:"titulo" binding:"required"`
	Mensagem string `json:"mensagem" binding:"required"`
}

func (s *Server) handleMuralList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"avisos": s.deps.Mural.List()})
}

func (s *Server) handleMuralCreate(c *gin.Context) {
	var req avisoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe título e mensagem"})
		return
	}
	c.JSON(http.StatusCreated, s.deps.Mural.Create(req.Titulo, req.Mensagem))
}

func (s *Server) handleMuralUpdate(c *gin.Context) {
	var req avisoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe título e mensagem"})
		return
	}

	aviso, err := s.deps.Mural.Update(c.Param("id"), req.Titulo, req.Mensagem)
	if err != nil {
		if errors.Is(err, mural.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Aviso não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
		return
	}
	c.JSON(http.StatusOK, aviso)
}

func (s *Server) handleMuralDelete(c *gin.Context) {
	if err := s.deps.Mural.Delete(c.Param("id")); err != nil {
		if errors.Is(err, mural.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Aviso não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
