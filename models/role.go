package models

// Roles del sistema
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleOperator   = "operador"
	RoleViewer     = "visualizador"
)

// Recursos sobre los que se otorgan permisos
const (
	ResourceEquipment   = "equipos"
	ResourceMaintenance = "mantenimiento"
	ResourceDocuments   = "documentos"
	ResourceFuel        = "combustible"
	ResourceFilters     = "filtros"
	ResourceOperators   = "operadores"
	ResourceHistory     = "historial"
	ResourceUsers       = "usuarios"
	ResourceExports     = "exportes"
)

// Acciones posibles sobre un recurso
const (
	ActionRead   = "leer"
	ActionCreate = "crear"
	ActionUpdate = "actualizar"
	ActionDelete = "eliminar"
)

// rolePermissions es la matriz de permisos dirigida por datos:
// rol -> recurso -> acciones permitidas. El comodín "*" cubre todos los
// recursos o todas las acciones.
var rolePermissions = map[string]map[string][]string{
	RoleAdmin: {
		"*": {"*"},
	},
	RoleSupervisor: {
		ResourceEquipment:   {ActionRead, ActionCreate, ActionUpdate},
		ResourceMaintenance: {ActionRead, ActionCreate, ActionUpdate},
		ResourceDocuments:   {ActionRead, ActionCreate, ActionUpdate},
		ResourceFuel:        {ActionRead, ActionCreate, ActionUpdate},
		ResourceFilters:     {ActionRead, ActionCreate, ActionUpdate},
		ResourceOperators:   {ActionRead, ActionCreate, ActionUpdate},
		ResourceHistory:     {ActionRead},
		ResourceExports:     {ActionRead, ActionCreate},
	},
	RoleOperator: {
		ResourceEquipment:   {ActionRead, ActionUpdate},
		ResourceMaintenance: {ActionRead, ActionUpdate},
		ResourceDocuments:   {ActionRead},
		ResourceFuel:        {ActionRead, ActionCreate},
		ResourceFilters:     {ActionRead},
		ResourceOperators:   {ActionRead},
	},
	RoleViewer: {
		ResourceEquipment:   {ActionRead},
		ResourceMaintenance: {ActionRead},
		ResourceDocuments:   {ActionRead},
		ResourceFuel:        {ActionRead},
		ResourceFilters:     {ActionRead},
		ResourceOperators:   {ActionRead},
	},
}

// RoleCan evalúa la matriz de permisos para un rol, recurso y acción.
// Roles desconocidos no tienen ningún permiso.
func RoleCan(role, resource, action string) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	for _, scope := range []string{resource, "*"} {
		actions, ok := perms[scope]
		if !ok {
			continue
		}
		for _, a := range actions {
			if a == action || a == "*" {
				return true
			}
		}
	}
	return false
}

// KnownRoles devuelve los roles definidos en la matriz
func KnownRoles() []string {
	return []string{RoleAdmin, RoleSupervisor, RoleOperator, RoleViewer}
}
