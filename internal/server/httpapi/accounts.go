package httpapi

import (
	"net/http"

	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/services"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleStudentCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string `json:"name"`
		Email         string `json:"email"`
		Password      string `json:"password"`
		ClassStanding string `json:"class"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	_, token, err := s.accounts.RegisterStudent(r.Context(), services.NewStudent{
		Name: req.Name, Email: req.Email, Password: req.Password, ClassStanding: req.ClassStanding,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"message": "Account created", "auth_token": token}))
}

func (s *Server) handleEmployerCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name               string `json:"name"`
		Email              string `json:"email"`
		Password           string `json:"password"`
		Company            string `json:"company"`
		CompanyDescription string `json:"company_description"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	_, token, err := s.accounts.RegisterEmployer(r.Context(), services.NewEmployer{
		Name: req.Name, Email: req.Email, Password: req.Password,
		Company: req.Company, CompanyDescription: req.CompanyDescription,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"message": "Account created", "auth_token": token}))
}

func (s *Server) handleAdminCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Position string `json:"position"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	_, token, err := s.accounts.RegisterAdmin(r.Context(), services.NewAdmin{
		Name: req.Name, Email: req.Email, Password: req.Password, Position: req.Position,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"message": "Account created", "auth_token": token}))
}

func (s *Server) handleStudentLogin(w http.ResponseWriter, r *http.Request) {
	s.handleLogin(w, r, models.KindStudent)
}

func (s *Server) handleEmployerLogin(w http.ResponseWriter, r *http.Request) {
	s.handleLogin(w, r, models.KindEmployer)
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	s.handleLogin(w, r, models.KindAdmin)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, kind models.PrincipalKind) {
	var req credentials
	if !s.decodeJSON(w, r, &req) {
		return
	}

	token, err := s.accounts.Login(r.Context(), kind, req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"message": "logged in", "auth_token": token}))
}

func (s *Server) handleStudentDelete(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.identity(w, r, models.KindStudent)
	if !ok {
		return
	}

	if err := s.accounts.DeleteStudent(r.Context(), ident.ID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(nil))
}

func (s *Server) handleEmployerVerify(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.identity(w, r, models.KindAdmin); !ok {
		return
	}

	if err := s.accounts.ApproveEmployer(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(nil))
}

func (s *Server) handleAdminEmployers(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.identity(w, r, models.KindAdmin); !ok {
		return
	}

	employers, err := s.accounts.ListEmployers(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"employers": newEmployerViews(employers)}))
}

func (s *Server) handleAdminStudents(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.identity(w, r, models.KindAdmin); !ok {
		return
	}

	students, err := s.accounts.ListStudents(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"students": newStudentViews(students)}))
}
