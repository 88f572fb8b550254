// internal/app/system/i18n/i18n.go
//
// Package i18n resolves the request language and holds the message catalog
// for user-facing copy. English is the source language and the fallback.
package i18n

import (
	"fmt"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	MsgDashboardTitle = "Dashboard"
	MsgWelcome        = "Welcome back, %s"
	MsgLoadFailed     = "Failed to load dashboard data."
	MsgNoProjects     = "No projects yet."
	MsgNoTasks        = "No tasks yet."
	MsgProjects       = "Projects"
	MsgTasks          = "Tasks"
	MsgUsers          = "Users"
	MsgCompleted      = "Completed"
	MsgInProgress     = "In progress"
	MsgOther          = "Other"
	MsgToDo           = "To do"
	MsgRecentProjects = "Recent projects"
	MsgRecentTasks    = "Recent tasks"
	MsgTaskProgress   = "Task progress"
	MsgTaskCount      = "%d tasks"
	MsgSignIn         = "Sign in"
	MsgSignOut        = "Sign out"
	MsgEmail          = "Email"
	MsgPassword       = "Password"
	MsgBadCredentials = "Invalid email or password."
	MsgSessionExpired = "Your session has expired. Please sign in again."
	MsgSignInFailed   = "Sign-in is temporarily unavailable. Please try again."
	MsgAccessDenied   = "Access denied"
	MsgNoPermission   = "You don't have permission to view this page."
	MsgSignInRequired = "Sign in required"
	MsgPleaseSignIn   = "Please sign in to continue."
	MsgBadRequest     = "The request could not be processed."
	MsgServerError    = "Something went wrong. Please try again."
	MsgMissingFields  = "Please enter your email and password."
	MsgBack           = "Back"
	MsgRateLimited    = "Too many sign-in attempts. Please wait a minute and try again."
	MsgAccountLocked  = "Too many sign-in attempts for this account. Please wait a few minutes."
)

var supported = []language.Tag{
	language.English, // first entry is the matcher's default
	language.Spanish,
	language.French,
}

var matcher = language.NewMatcher(supported)

var translations = map[language.Tag]map[string]string{
	language.Spanish: {
		MsgDashboardTitle: "Panel",
		MsgWelcome:        "Bienvenido de nuevo, %s",
		MsgLoadFailed:     "No se pudieron cargar los datos del panel.",
		MsgNoProjects:     "Aún no hay proyectos.",
		MsgNoTasks:        "Aún no hay tareas.",
		MsgProjects:       "Proyectos",
		MsgTasks:          "Tareas",
		MsgUsers:          "Usuarios",
		MsgCompleted:      "Completadas",
		MsgInProgress:     "En curso",
		MsgOther:          "Otras",
		MsgToDo:           "Pendiente",
		MsgRecentProjects: "Proyectos recientes",
		MsgRecentTasks:    "Tareas recientes",
		MsgTaskProgress:   "Progreso de tareas",
		MsgTaskCount:      "%d tareas",
		MsgSignIn:         "Iniciar sesión",
		MsgSignOut:        "Cerrar sesión",
		MsgEmail:          "Correo electrónico",
		MsgPassword:       "Contraseña",
		MsgBadCredentials: "Correo o contraseña no válidos.",
		MsgSessionExpired: "Tu sesión ha caducado. Inicia sesión de nuevo.",
		MsgSignInFailed:   "El inicio de sesión no está disponible. Inténtalo de nuevo.",
		MsgAccessDenied:   "Acceso denegado",
		MsgNoPermission:   "No tienes permiso para ver esta página.",
		MsgSignInRequired: "Inicio de sesión requerido",
		MsgPleaseSignIn:   "Inicia sesión para continuar.",
		MsgBadRequest:     "No se pudo procesar la solicitud.",
		MsgServerError:    "Algo salió mal. Inténtalo de nuevo.",
		MsgMissingFields:  "Introduce tu correo y tu contraseña.",
		MsgBack:           "Volver",
		MsgRateLimited:    "Demasiados intentos de inicio de sesión. Espera un minuto e inténtalo de nuevo.",
		MsgAccountLocked:  "Demasiados intentos para esta cuenta. Espera unos minutos.",
	},
	language.French: {
		MsgDashboardTitle: "Tableau de bord",
		MsgWelcome:        "Bon retour, %s",
		MsgLoadFailed:     "Impossible de charger les données du tableau de bord.",
		MsgNoProjects:     "Aucun projet pour le moment.",
		MsgNoTasks:        "Aucune tâche pour le moment.",
		MsgProjects:       "Projets",
		MsgTasks:          "Tâches",
		MsgUsers:          "Utilisateurs",
		MsgCompleted:      "Terminées",
		MsgInProgress:     "En cours",
		MsgOther:          "Autres",
		MsgToDo:           "À faire",
		MsgRecentProjects: "Projets récents",
		MsgRecentTasks:    "Tâches récentes",
		MsgTaskProgress:   "Avancement des tâches",
		MsgTaskCount:      "%d tâches",
		MsgSignIn:         "Se connecter",
		MsgSignOut:        "Se déconnecter",
		MsgEmail:          "E-mail",
		MsgPassword:       "Mot de passe",
		MsgBadCredentials: "E-mail ou mot de passe invalide.",
		MsgSessionExpired: "Votre session a expiré. Veuillez vous reconnecter.",
		MsgSignInFailed:   "La connexion est momentanément indisponible. Réessayez.",
		MsgAccessDenied:   "Accès refusé",
		MsgNoPermission:   "Vous n'avez pas l'autorisation de voir cette page.",
		MsgSignInRequired: "Connexion requise",
		MsgPleaseSignIn:   "Veuillez vous connecter pour continuer.",
		MsgBadRequest:     "La requête n'a pas pu être traitée.",
		MsgServerError:    "Une erreur s'est produite. Réessayez.",
		MsgMissingFields:  "Saisissez votre e-mail et votre mot de passe.",
		MsgBack:           "Retour",
		MsgRateLimited:    "Trop de tentatives de connexion. Patientez une minute puis réessayez.",
		MsgAccountLocked:  "Trop de tentatives pour ce compte. Patientez quelques minutes.",
	},
}

var cat = mustBuildCatalog()

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("i18n: %s/%q: %v", tag, key, err))
			}
		}
	}
	return b
}

// Supported returns the languages with a translation catalog.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Match picks the best supported language for the given preferences
// (each a BCP 47 tag or an Accept-Language header value). Unparseable input
// falls back to English.
func Match(prefs ...string) language.Tag {
	tag, _ := language.MatchStrings(matcher, prefs...)
	base, _ := tag.Base()
	if t, err := language.Compose(base); err == nil {
		return t
	}
	return language.English
}

// FromRequest resolves the language for r. An explicit ?lang= wins over
// Accept-Language; fallback is used when neither is present.
func FromRequest(r *http.Request, fallback language.Tag) language.Tag {
	q := r.URL.Query().Get("lang")
	h := r.Header.Get("Accept-Language")
	if q == "" && h == "" {
		return fallback
	}
	return Match(q, h)
}

// Printer formats catalog messages for one language.
type Printer struct {
	Tag language.Tag
	p   *message.Printer
}

// NewPrinter returns a Printer for tag.
func NewPrinter(tag language.Tag) *Printer {
	return &Printer{Tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// T looks up key and formats it with args.
func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// Lang is the BCP 47 string for the html lang attribute.
func (p *Printer) Lang() string {
	return p.Tag.String()
}
