package java

import (
	"sync"

	"github.com/dhamidi/jsig/internal/metrics"
	"github.com/dhamidi/jsig/signature"
)

// repoKey identifies an entry: the signature substring or variable
// name, plus the declaration whose scope it was resolved in.
type repoKey struct {
	text string
	ctx  GenericDeclaration
}

// Repository memoizes resolved parameterized types and type variables.
// Entries for different contexts never collide. Registration is
// first-wins: a later registration for the same key returns the node
// that is already stored. A Repository is safe for concurrent use.
type Repository struct {
	types sync.Map // repoKey -> *ParameterizedType
	vars  sync.Map // repoKey -> *TypeVariable
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) FindParameterizedType(node *signature.ParameterizedType, ctx GenericDeclaration) (*ParameterizedType, bool) {
	v, ok := r.types.Load(repoKey{node.Signature, ctx})
	if !ok {
		metrics.RepositoryLookups.WithLabelValues("parameterized", "miss").Inc()
		return nil, false
	}
	metrics.RepositoryLookups.WithLabelValues("parameterized", "hit").Inc()
	return v.(*ParameterizedType), true
}

// RegisterParameterizedType stores t under node's signature and returns
// the node registered for that key, which is t unless another caller
// got there first.
func (r *Repository) RegisterParameterizedType(t *ParameterizedType, node *signature.ParameterizedType, ctx GenericDeclaration) *ParameterizedType {
	v, loaded := r.types.LoadOrStore(repoKey{node.Signature, ctx}, t)
	if loaded {
		metrics.RepositoryLookups.WithLabelValues("parameterized", "shared").Inc()
		log.Debugf("parameterized type %s in %s already registered", node.Signature, ctx.Name())
	} else {
		metrics.RepositoryLookups.WithLabelValues("parameterized", "registered").Inc()
		log.Debugf("registered parameterized type %s in %s", node.Signature, ctx.Name())
	}
	return v.(*ParameterizedType)
}

func (r *Repository) FindTypeVariable(name string, ctx GenericDeclaration) (*TypeVariable, bool) {
	v, ok := r.vars.Load(repoKey{name, ctx})
	if !ok {
		metrics.RepositoryLookups.WithLabelValues("variable", "miss").Inc()
		return nil, false
	}
	metrics.RepositoryLookups.WithLabelValues("variable", "hit").Inc()
	return v.(*TypeVariable), true
}

func (r *Repository) RegisterTypeVariable(v *TypeVariable, name string, ctx GenericDeclaration) *TypeVariable {
	stored, loaded := r.vars.LoadOrStore(repoKey{name, ctx}, v)
	if loaded {
		metrics.RepositoryLookups.WithLabelValues("variable", "shared").Inc()
	} else {
		metrics.RepositoryLookups.WithLabelValues("variable", "registered").Inc()
		log.Debugf("registered type variable %s in %s", name, ctx.Name())
	}
	return stored.(*TypeVariable)
}

// Len reports the number of parameterized types and type variables held.
func (r *Repository) Len() (types, vars int) {
	r.types.Range(func(_, _ any) bool { types++; return true })
	r.vars.Range(func(_, _ any) bool { vars++; return true })
	return types, vars
}
