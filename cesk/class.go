package cesk

// FieldDef holds only the field's name; fields carry no type information in
// this language.
type FieldDef struct {
	Name string
}

// MethodDef holds a method name, its ordered formal parameter names, and the
// entry statement of its body.
type MethodDef struct {
	Name   string
	Params []string
	Entry  Stmt
}

// ClassDef holds a class name, an optional parent class name, and the
// field/method tables declared directly on this class (not inherited).
type ClassDef struct {
	Name       string
	Parent     string
	HasParent  bool
	Fields     map[string]*FieldDef
	Methods    map[string]*MethodDef
}

// NewClassDef constructs an empty class ready to have fields and methods
// added. It does not register the class; the caller installs it with
// ClassDB.Register (the bundled parser does so as each class is built).
func NewClassDef(name string) *ClassDef {
	return &ClassDef{
		Name:    name,
		Fields:  make(map[string]*FieldDef),
		Methods: make(map[string]*MethodDef),
	}
}

// SetParent records the (possibly absent) parent class name.
func (c *ClassDef) SetParent(name string) {
	c.Parent = name
	c.HasParent = true
}

// ClassDB is the process-wide (or, per machine Context, per-interpreter)
// registry of class definitions, keyed by class name. Parent references are
// by name, resolved through this registry rather than held as direct
// pointers, which avoids building a cyclic object graph and sidesteps
// initialization-order issues (spec.md §9).
type ClassDB struct {
	classes       map[string]*ClassDef
	methodCache   map[methodCacheKey]*MethodDef
	fieldCache    map[methodCacheKey]*FieldDef
}

type methodCacheKey struct {
	class, member string
}

// NewClassDB returns an empty class registry.
func NewClassDB() *ClassDB {
	return &ClassDB{
		classes:     make(map[string]*ClassDef),
		methodCache: make(map[methodCacheKey]*MethodDef),
		fieldCache:  make(map[methodCacheKey]*FieldDef),
	}
}

// Register installs c under its name. Duplicate registration overwrites the
// previous definition; the runtime assumes class names are unique and does
// not detect the violation.
func (db *ClassDB) Register(c *ClassDef) {
	db.classes[c.Name] = c
	// A re-registration can invalidate cached lookups rooted at this name.
	for key := range db.methodCache {
		if key.class == c.Name {
			delete(db.methodCache, key)
		}
	}
	for key := range db.fieldCache {
		if key.class == c.Name {
			delete(db.fieldCache, key)
		}
	}
}

// Lookup returns the class definition registered under name, if any.
func (db *ClassDB) Lookup(name string) (*ClassDef, bool) {
	c, ok := db.classes[name]
	return c, ok
}

// IsInstanceOf returns true iff target equals class or any ancestor's name,
// walking the parent chain until it is exhausted.
func (db *ClassDB) IsInstanceOf(class, target string) bool {
	name := class
	for {
		if name == target {
			return true
		}
		c, ok := db.classes[name]
		if !ok || !c.HasParent {
			return false
		}
		name = c.Parent
	}
}

// LookupMethod walks from class toward the root, returning the first
// (shallowest) method definition named member. It fails with NoSuchMemberError
// if the root is reached without a hit. Resolved pairs are cached, per the
// implementation note in spec.md §9.
func (db *ClassDB) LookupMethod(class, member string) (*MethodDef, error) {
	key := methodCacheKey{class, member}
	if m, ok := db.methodCache[key]; ok {
		return m, nil
	}

	name := class
	for {
		c, ok := db.classes[name]
		if !ok {
			return nil, &NoSuchMemberError{Class: class, Member: member}
		}
		if m, ok := c.Methods[member]; ok {
			db.methodCache[key] = m
			return m, nil
		}
		if !c.HasParent {
			return nil, &NoSuchMemberError{Class: class, Member: member}
		}
		name = c.Parent
	}
}

// LookupField walks from class toward the root, returning the first
// (shallowest) field definition named member.
func (db *ClassDB) LookupField(class, member string) (*FieldDef, error) {
	key := methodCacheKey{class, member}
	if f, ok := db.fieldCache[key]; ok {
		return f, nil
	}

	name := class
	for {
		c, ok := db.classes[name]
		if !ok {
			return nil, &NoSuchMemberError{Class: class, Member: member}
		}
		if f, ok := c.Fields[member]; ok {
			db.fieldCache[key] = f
			return f, nil
		}
		if !c.HasParent {
			return nil, &NoSuchMemberError{Class: class, Member: member}
		}
		name = c.Parent
	}
}

// ParentOf returns the name of class's parent class. It is used by
// InvokeSuper, which starts method lookup at the parent of $this's class.
func (db *ClassDB) ParentOf(class string) (string, error) {
	c, ok := db.classes[class]
	if !ok || !c.HasParent {
		return "", &NoSuchMemberError{Class: class, Member: "<parent>"}
	}
	return c.Parent, nil
}
