package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avenir-oabms/relatorios-unificados/core/db"
	"github.com/avenir-oabms/relatorios-unificados/internal/auth"
	"github.com/avenir-oabms/relatorios-unificados/internal/logger"
)

type loginRequest struct {
	Email string `json:"email" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe e-mail e senha"})
		return
	}

	user, err := s.deps.Auth.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, db.ErrUserNotFound) {
			logger.Error("Falha ao consultar usuário no login: %v", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}
	if !user.Ativo || !auth.CheckPassword(user.PasswordHash, req.Senha) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}

	token, err := auth.IssueToken(s.deps.Config.JWTSecret, user.ID, user.Email, user.Role)
	if err != nil {
		logger.Error("Falha ao emitir token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
		return
	}

	user.PasswordHash = ""
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (s *Server) handleMe(c *gin.Context) {
	claims := auth.ClaimsFrom(c)

	user, err := s.deps.Auth.FindByID(c.Request.Context(), claims.UID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
		return
	}
	user.PasswordHash = ""
	c.JSON(http.StatusOK, user)
}

type registerRequest struct {
	Nome  string `json:"nome" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
	Role  string `json:"role"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados de cadastro inválidos"})
		return
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != "admin" {
		role = "user"
	}

	hash, err := auth.HashPassword(req.Senha)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.deps.Auth.CreateUser(c.Request.Context(), req.Nome, req.Email, role, hash)
	if err != nil {
		logger.Error("Falha ao criar usuário: %v", err)
		c.JSON(http.StatusConflict, gin.H{"error": "Não foi possível criar o usuário"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.deps.Auth.ListUsers(c.Request.Context())
	if err != nil {
		logger.Error("Falha ao listar usuários: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	var patch db.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados de atualização inválidos"})
		return
	}

	if err := s.deps.Auth.UpdateUser(c.Request.Context(), id, patch); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type passwordRequest struct {
	Senha string `json:"senha" binding:"required"`
}

func (s *Server) handleResetPassword(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe a nova senha"})
		return
	}

	hash, err := auth.HashPassword(req.Senha)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.deps.Auth.SetPassword(c.Request.Context(), id, hash); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
			return
		}
		logger.Error("Falha ao redefinir senha: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type changePasswordRequest struct {
	SenhaAtual string `json:"senha_atual" binding:"required"`
	SenhaNova  string `json:"senha_nova" binding:"required"`
}

func (s *Server) handleChangePassword(c *gin.Context) {
	claims := auth.ClaimsFrom(c)

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe a senha atual e a nova"})
		return
	}

	user, err := s.deps.Auth.FindByID(c.Request.Context(), claims.UID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.SenhaAtual) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Senha atual incorreta"})
		return
	}

	hash, err := auth.HashPassword(req.SenhaNova)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.deps.Auth.SetPassword(c.Request.Context(), user.ID, hash); err != nil {
		logger.Error("Falha ao alterar senha: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
