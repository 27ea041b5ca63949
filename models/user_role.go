package models

type UserRole string

const (
	AdminRole     UserRole = "ADMIN"
	ReviewerRole  UserRole = "REVIEWER"
	ApplicantRole UserRole = "APPLICANT"
)

// Режим интерпретации схемы анкеты рендерером
type RenderRole string

const (
	RenderRoleApplicant RenderRole = "applicant"
	RenderRoleAdmin     RenderRole = "admin"
	RenderRolePublic    RenderRole = "public"
)

// Роли персонала, которым доступен кабинет рассмотрения заявок
func (r UserRole) IsStaff() bool {
	return r == AdminRole || r == ReviewerRole
}
