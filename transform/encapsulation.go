package transform

import (
	"fmt"
	"strings"

	"github.com/viant/unify/inspector/java"
	"github.com/viant/unify/namepath"
	"github.com/viant/unify/source"
)

// FieldEncapsulation generates accessors for instance fields of origin classes and routes
// field access across the origin group through them. Accesses that cannot be routed keep
// their field from removal.
type FieldEncapsulation struct {
	env   *Env
	units []*source.Unit
	plans map[string]*classPlan
	known map[string]bool
}

// classPlan holds the accessors planned for one origin class
type classPlan struct {
	name      namepath.Path
	unit      *source.Unit
	decl      *source.Declaration
	depth     int
	super     *classPlan
	enclosing *classPlan // set for inner classes only
	accessors map[string]*java.Accessor
	types     map[string]string
	private   map[string]bool
	flags     []string
}

func NewFieldEncapsulation(env *Env) *FieldEncapsulation {
	return &FieldEncapsulation{env: env}
}

func (p *FieldEncapsulation) Name() string { return "FieldEncapsulation" }

func (p *FieldEncapsulation) Parallel() bool { return true }

func (p *FieldEncapsulation) ApplicableUnits(units []*source.Unit) []*source.Unit {
	return p.env.Groups(units).Origin
}

// Prepare plans accessors of every origin class before any unit is rewritten
func (p *FieldEncapsulation) Prepare(units []*source.Unit) error {
	p.units = units
	p.plans = map[string]*classPlan{}
	p.known = map[string]bool{}
	for _, unit := range p.ApplicableUnits(units) {
		for _, class := range classes(unit, false) {
			p.plans[class.Name.String()] = p.plan(unit, class)
		}
	}
	for _, plan := range p.plans {
		plan.super = p.superPlan(plan)
		if parent := plan.name.Parent(); !plan.decl.Modifiers.Static && !parent.Equal(plan.name) {
			plan.enclosing = p.plans[parent.String()]
		}
		for name := range plan.accessors {
			p.known[name] = true
		}
	}
	return nil
}

func (p *FieldEncapsulation) Apply(unit *source.Unit) (*Result, error) {
	if p.plans == nil {
		return nil, unitError(p, unit, nil, "accessors were not planned")
	}
	result := &Result{Unit: unit.Identity()}
	var plans []*classPlan
	for _, class := range classes(unit, false) {
		if plan := p.plans[class.Name.String()]; plan != nil && plan.decl == class.Decl {
			plans = append(plans, plan)
		}
	}
	for _, plan := range plans {
		p.addAccessors(plan, result)
	}
	for _, plan := range plans {
		p.rewrite(plan, result)
	}
	return result, nil
}

func (p *FieldEncapsulation) candidates(class *classDecl) []*source.Field {
	var result []*source.Field
	for _, field := range class.Decl.Fields {
		if field.Modifiers.Static {
			continue
		}
		if !p.env.Config.Passes.ExposeMembers && p.env.Resolver.OriginFeature(class.Name, field.Name) == nil {
			continue
		}
		result = append(result, field)
	}
	return result
}

func (p *FieldEncapsulation) plan(unit *source.Unit, class *classDecl) *classPlan {
	decl := class.Decl
	plan := &classPlan{
		name:      class.Name,
		unit:      unit,
		decl:      decl,
		depth:     class.depth,
		accessors: map[string]*java.Accessor{},
		types:     map[string]string{},
		private:   map[string]bool{},
	}
	for _, field := range decl.Fields {
		plan.types[field.Name] = field.Type
		plan.private[field.Name] = field.Modifiers.Visibility == source.Private
	}
	fields := p.candidates(class)
	written := p.writtenFields(plan, fields)
	for _, field := range fields {
		accessor := &java.Accessor{Owner: class.Name.String(), Field: field.Name, Getter: GetterName(field)}
		if !field.Modifiers.Final || written[field.Name] {
			accessor.Setter = SetterName(field.Name)
		}
		if reason := collision(decl, field, accessor); reason != "" {
			plan.flags = append(plan.flags, fmt.Sprintf("field %v.%v skipped: %s", decl.Name, field.Name, reason))
			p.env.retain(class.Name, field.Name, reason)
			continue
		}
		plan.accessors[field.Name] = accessor
	}
	return plan
}

func (p *FieldEncapsulation) addAccessors(plan *classPlan, result *Result) {
	decl := plan.decl
	for _, flag := range plan.flags {
		result.flag("%s", flag)
		p.env.Logger.Warn("field not encapsulated", "pass", p.Name(), "class", plan.name.String(), "reason", flag)
	}
	for _, field := range decl.Fields {
		accessor := plan.accessors[field.Name]
		if accessor == nil {
			continue
		}
		if field.Modifiers.Final {
			field.Modifiers.Final = false
			result.Rewritten++
		}
		if decl.Method(accessor.Getter) == nil {
			decl.AddMethod(&source.Method{
				Modifiers: source.Modifiers{Visibility: source.Public},
				Result:    field.Type,
				Name:      accessor.Getter,
				Body:      p.env.Emitter.Block(plan.depth, "return this."+field.Name+";"),
			})
			result.Added++
		}
		if accessor.Setter != "" && decl.Method(accessor.Setter, field.Type) == nil {
			decl.AddMethod(&source.Method{
				Modifiers:  source.Modifiers{Visibility: source.Public},
				Result:     "void",
				Name:       accessor.Setter,
				Parameters: []*source.Parameter{{Type: field.Type, Name: field.Name}},
				Body:       p.env.Emitter.Block(plan.depth, "this."+field.Name+" = "+field.Name+";"),
			})
			result.Added++
		}
	}
}

// rewrite routes field access in initializers and bodies of the class through accessors
func (p *FieldEncapsulation) rewrite(plan *classPlan, result *Result) {
	decl := plan.decl
	members, types := plan.members(true)
	for _, field := range decl.Fields {
		if field.Init == "" {
			continue
		}
		scope := &java.Scope{Members: members, Types: types, Selected: p.selected(plan.unit), Known: p.isKnown}
		initializer, retained, err := java.EncapsulateInitializer(field.Init, scope)
		if err != nil {
			result.flag("field %v.%v initializer not rewritten: %v", decl.Name, field.Name, err)
			p.retainAll(members, "initializer of "+field.Name+" not rewritten")
			continue
		}
		p.record(retained, result)
		if initializer != field.Init {
			field.Init = initializer
			result.Rewritten++
		}
	}
	for _, method := range decl.Methods {
		scope := &java.Scope{
			Members:  accessorsOutside(method, members),
			Types:    types,
			Params:   parameterTypes(method),
			Selected: p.selected(plan.unit),
			Known:    p.isKnown,
		}
		body, retained, err := java.EncapsulateFields(method.Body, scope)
		if err != nil {
			result.flag("method %v.%v not rewritten: %v", decl.Name, method.Signature(), err)
			p.retainAll(members, "method "+method.Signature()+" not rewritten")
			continue
		}
		p.record(retained, result)
		if body != method.Body {
			method.Body = body
			result.Rewritten++
		}
	}
}

// record keeps fields whose access stayed raw; an unknown owner keeps every planned field of that name
func (p *FieldEncapsulation) record(retained []*java.Retention, result *Result) {
	for _, retention := range retained {
		name := retention.Field
		if retention.Owner != "" {
			p.env.retain(namepath.Parse(retention.Owner), retention.Field, retention.Reason)
			name = retention.Owner + "." + retention.Field
		} else {
			for _, plan := range p.plans {
				if plan.accessors[retention.Field] != nil {
					p.env.retain(plan.name, retention.Field, retention.Reason)
				}
			}
		}
		result.flag("field %v kept: %s", name, retention.Reason)
		p.env.Logger.Warn("field kept", "pass", p.Name(), "unit", result.Unit, "field", name, "reason", retention.Reason)
	}
}

func (p *FieldEncapsulation) retainAll(accessors map[string]*java.Accessor, reason string) {
	for _, accessor := range accessors {
		p.env.retain(namepath.Parse(accessor.Owner), accessor.Field, reason)
	}
}

func (p *FieldEncapsulation) isKnown(field string) bool {
	return p.known[field]
}

// selected resolves receiver types as seen from unit to the accessors of the class they name
func (p *FieldEncapsulation) selected(unit *source.Unit) func(typeRef string) (map[string]*java.Accessor, bool) {
	return func(typeRef string) (map[string]*java.Accessor, bool) {
		name, ok := p.resolve(unit, source.BaseType(typeRef))
		if !ok {
			return nil, false
		}
		plan := p.plans[name.String()]
		if plan == nil {
			return nil, true
		}
		accessors, _ := plan.members(false)
		return accessors, true
	}
}

// resolve qualifies a type reference as seen from unit: nested classes of the unit first, then imports and namespaces
func (p *FieldEncapsulation) resolve(unit *source.Unit, typeRef string) (namepath.Path, bool) {
	if typeRef == "" {
		return namepath.Path{}, false
	}
	path := namepath.Parse(typeRef)
	if _, ok := p.plans[path.String()]; ok {
		return path, true
	}
	for _, qualified := range unit.Declarations() {
		if qualified.Name.LastSegment() == path.FirstSegment() {
			return withTail(qualified.Name, path), true
		}
	}
	if head, ok := qualify(unit, path.FirstSegment(), p.units); ok {
		return withTail(head, path), true
	}
	if strings.Contains(typeRef, namepath.Separator) {
		return path, true
	}
	return namepath.Path{}, false
}

// withTail appends the segments of path following its first one to head
func withTail(head, path namepath.Path) namepath.Path {
	if !path.HasMultipleSegments() {
		return head
	}
	return head.Concat(path.CutFirstSegment())
}

func (p *FieldEncapsulation) superPlan(plan *classPlan) *classPlan {
	if plan.decl.SuperType == "" {
		return nil
	}
	if name, ok := p.resolve(plan.unit, source.BaseType(plan.decl.SuperType)); ok {
		return p.plans[name.String()]
	}
	return nil
}

// members returns accessors and declared types of fields reachable by bare name: own fields, then non private
// inherited ones, then with enclosing set, fields of enclosing instances
func (c *classPlan) members(enclosing bool) (map[string]*java.Accessor, map[string]string) {
	accessors := map[string]*java.Accessor{}
	types := map[string]string{}
	visited := map[*classPlan]bool{}
	for plan := c; plan != nil && !visited[plan]; plan = plan.super {
		visited[plan] = true
		for name, fieldType := range plan.types {
			if _, shadowed := types[name]; shadowed || (plan != c && plan.private[name]) {
				continue
			}
			types[name] = fieldType
			if accessor := plan.accessors[name]; accessor != nil {
				accessors[name] = accessor
			}
		}
	}
	if enclosing && c.enclosing != nil {
		outerAccessors, outerTypes := c.enclosing.members(true)
		for name, fieldType := range outerTypes {
			if _, shadowed := types[name]; shadowed {
				continue
			}
			types[name] = fieldType
			if accessor := outerAccessors[name]; accessor != nil {
				accessors[name] = accessor
			}
		}
	}
	return accessors, types
}

// writtenFields returns fields assigned anywhere in the declaration's methods and constructors
func (p *FieldEncapsulation) writtenFields(plan *classPlan, fields []*source.Field) map[string]bool {
	var names []string
	for _, field := range fields {
		names = append(names, field.Name)
	}
	written := map[string]bool{}
	for _, method := range plan.decl.Methods {
		assigned, err := java.AssignedFields(method.Body, names, parameterNames(method))
		if err != nil {
			plan.flags = append(plan.flags, fmt.Sprintf("method %v.%v not analysed: %v", plan.decl.Name, method.Signature(), err))
			continue
		}
		for name := range assigned {
			written[name] = true
		}
	}
	return written
}

// collision returns a reason when an existing method blocks an accessor
func collision(decl *source.Declaration, field *source.Field, accessor *java.Accessor) string {
	fieldType := source.NormalizeType(field.Type)
	for _, method := range decl.MethodsNamed(accessor.Getter) {
		if len(method.Parameters) == 0 && source.NormalizeType(method.Result) != fieldType {
			return method.Signature() + " returns " + method.Result
		}
	}
	if accessor.Setter == "" {
		return ""
	}
	for _, method := range decl.MethodsNamed(accessor.Setter) {
		if method.HasParameterTypes(field.Type) && source.NormalizeType(method.Result) != "void" {
			return method.Signature() + " returns " + method.Result
		}
	}
	return ""
}

// accessorsOutside drops accessors implemented by method itself
func accessorsOutside(method *source.Method, accessors map[string]*java.Accessor) map[string]*java.Accessor {
	result := make(map[string]*java.Accessor, len(accessors))
	for name, accessor := range accessors {
		if method.Constructor || (method.Name != accessor.Getter && method.Name != accessor.Setter) {
			result[name] = accessor
		}
	}
	return result
}

func parameterNames(method *source.Method) []string {
	var result []string
	for _, param := range method.Parameters {
		result = append(result, param.Name)
	}
	return result
}

func parameterTypes(method *source.Method) map[string]string {
	result := make(map[string]string, len(method.Parameters))
	for _, param := range method.Parameters {
		declared := param.Type
		if param.Variadic {
			declared += "[]"
		}
		result[param.Name] = declared
	}
	return result
}

// GetterName returns is+Name for boolean fields, get+Name otherwise
func GetterName(field *source.Field) string {
	if source.NormalizeType(field.Type) == "boolean" {
		return "is" + source.Capitalize(field.Name)
	}
	return "get" + source.Capitalize(field.Name)
}

// SetterName returns set+Name
func SetterName(fieldName string) string {
	return "set" + source.Capitalize(fieldName)
}

// AccessorNames returns every accessor name a field may have
func AccessorNames(fieldName string) []string {
	capitalized := source.Capitalize(fieldName)
	return []string{"get" + capitalized, "set" + capitalized, "is" + capitalized}
}
