// Package access decide, para cada navegación del portal, si la sesión actual
// puede ver la página pedida o debe ser redirigida.
//
// Las funciones del paquete son puras: no leen ni modifican el estado de la
// sesión, solo reciben una instantánea y devuelven una decisión.
package access

import (
	"net/url"
	"slices"

	"github.com/jhoicas/palletpro-api/internal/domain/entity"
)

// Destinos fijos de redirección.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Policy describe quién puede ver una ruta.
//
// AnyRole admite a cualquier usuario autenticado. Only(roles...) admite solo a
// los roles listados; Only() sin roles es una lista vacía y no admite a nadie.
type Policy struct {
	restricted bool
	roles      []entity.Role
}

// AnyRole política sin lista de roles: basta con estar autenticado.
func AnyRole() Policy {
	return Policy{}
}

// Only política con lista de roles permitidos.
func Only(roles ...entity.Role) Policy {
	return Policy{restricted: true, roles: slices.Clone(roles)}
}

// Restricted informa si la política declara una lista de roles.
func (p Policy) Restricted() bool { return p.restricted }

// Roles devuelve una copia de la lista declarada (nil si no está restringida).
func (p Policy) Roles() []entity.Role {
	if !p.restricted {
		return nil
	}
	return slices.Clone(p.roles)
}

// Allows informa si el rol satisface la política.
func (p Policy) Allows(role entity.Role) bool {
	if !p.restricted {
		return true
	}
	return slices.Contains(p.roles, role)
}

// Outcome resultado de una decisión de acceso.
type Outcome int

const (
	// OutcomeLoading el estado de la sesión todavía no se conoce.
	OutcomeLoading Outcome = iota
	// OutcomeRedirectLogin no hay sesión válida.
	OutcomeRedirectLogin
	// OutcomeRedirectUnauthorized hay sesión pero el rol no está permitido.
	OutcomeRedirectUnauthorized
	// OutcomeRender la página puede mostrarse.
	OutcomeRender
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoading:
		return "loading"
	case OutcomeRedirectLogin:
		return "redirect_login"
	case OutcomeRedirectUnauthorized:
		return "redirect_unauthorized"
	case OutcomeRender:
		return "render"
	}
	return "unknown"
}

// Input instantánea con la que se toma la decisión.
type Input struct {
	Ready     bool                // false mientras la verificación inicial de sesión está en curso
	User      *entity.SessionUser // nil = sin sesión
	Policy    Policy
	Requested string // ruta pedida (path + query) para volver tras el login
}

// Decision salida de Decide. Location solo aplica a las redirecciones.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Decide aplica la máquina de estados de acceso. Nunca falla: denegar es un estado controlado.
func Decide(in Input) Decision {
	if !in.Ready {
		return Decision{Outcome: OutcomeLoading}
	}
	if in.User == nil {
		return Decision{Outcome: OutcomeRedirectLogin, Location: LoginLocation(in.Requested)}
	}
	if !in.Policy.Allows(in.User.Role) {
		return Decision{Outcome: OutcomeRedirectUnauthorized, Location: UnauthorizedPath}
	}
	return Decision{Outcome: OutcomeRender}
}

// LoginLocation construye la URL de login conservando el destino original en "from".
func LoginLocation(requested string) string {
	if requested == "" || requested == LoginPath {
		return LoginPath
	}
	return LoginPath + "?from=" + url.QueryEscape(requested)
}

// SafeReturnPath valida el destino "from" tras el login: solo rutas locales absolutas.
// Devuelve fallback si from apunta fuera del portal.
func SafeReturnPath(from, fallback string) string {
	if from == "" {
		return fallback
	}
	u, err := url.Parse(from)
	if err != nil || u.IsAbs() || u.Host != "" || len(u.Path) == 0 || u.Path[0] != '/' {
		return fallback
	}
	if len(from) > 1 && (from[1] == '/' || from[1] == '\\') {
		return fallback
	}
	return from
}
