package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"video-profile-extractor/internal/domain"
	"video-profile-extractor/pkg/logger"
)

const promptCollection = "prompts"

// placeholderPattern matches {identifier} tokens. JSON fragments inside the
// template text never match because quotes, colons and spaces break the
// identifier shape.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// promptRepository serves templates from Mongo through a process-wide cache.
// db may be nil (store unreachable at startup); every read then degrades to
// the built-in defaults and every write fails, which is the documented
// behaviour, not an error state of the repository itself.
type promptRepository struct {
	db    *mongo.Database
	mu    sync.RWMutex
	cache map[string]string
}

func NewPromptRepository(db *mongo.Database) domain.PromptRepository {
	r := &promptRepository{
		db:    db,
		cache: make(map[string]string),
	}
	if db != nil {
		r.seedDefaults()
	} else {
		logger.Log.Warn("Prompt store unreachable, serving built-in default prompts")
	}
	return r
}

// seedDefaults bulk-inserts the whole default table into an empty collection,
// or inserts only the missing names into a non-empty one. Existing documents
// are never overwritten, so customized templates survive restarts. Failures
// are logged and the repository keeps working from defaults.
func (r *promptRepository) seedDefaults() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := r.db.Collection(promptCollection)
	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		logger.Log.Warn("Failed to inspect prompt collection, continuing with defaults", "error", err)
		return
	}

	if count == 0 {
		docs := make([]interface{}, 0, len(defaultPromptOrder))
		for _, name := range defaultPromptOrder {
			docs = append(docs, defaultPrompts[name])
		}
		if _, err := coll.InsertMany(ctx, docs); err != nil {
			logger.Log.Warn("Failed to seed default prompts", "error", err)
			return
		}
		logger.Log.Info("Seeded prompt store with default templates", "count", len(docs))
		return
	}

	for _, name := range defaultPromptOrder {
		n, err := coll.CountDocuments(ctx, bson.M{"name": name})
		if err != nil {
			logger.Log.Warn("Failed to check prompt existence", "prompt", name, "error", err)
			continue
		}
		if n == 0 {
			if _, err := coll.InsertOne(ctx, defaultPrompts[name]); err != nil {
				logger.Log.Warn("Failed to insert missing default prompt", "prompt", name, "error", err)
				continue
			}
			logger.Log.Info("Inserted missing default prompt", "prompt", name)
		}
	}
}

func (r *promptRepository) GetPrompt(ctx context.Context, name string) (string, error) {
	r.mu.RLock()
	cached, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	if r.db != nil {
		var doc domain.PromptTemplate
		err := r.db.Collection(promptCollection).FindOne(ctx, bson.M{"name": name}).Decode(&doc)
		switch {
		case err == nil:
			r.storeInCache(name, doc.Template)
			return doc.Template, nil
		case errors.Is(err, mongo.ErrNoDocuments):
			// fall through to defaults
		default:
			logger.Log.Warn("Prompt store read failed, falling back to default", "prompt", name, "error", err)
		}
	}

	def, ok := defaultPrompts[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrPromptNotFound, name)
	}
	r.storeInCache(name, def.Template)
	return def.Template, nil
}

func (r *promptRepository) GetPromptWithVariables(ctx context.Context, name string, vars map[string]string) (string, error) {
	template, err := r.GetPrompt(ctx, name)
	if err != nil {
		return "", err
	}
	return renderTemplate(name, template, vars)
}

func (r *promptRepository) UpdatePrompt(ctx context.Context, name, template string) error {
	if r.db == nil {
		// Stale cache is preferable to cache content diverging from the store.
		return fmt.Errorf("%w: cannot update prompt %q", domain.ErrStoreUnavailable, name)
	}

	_, err := r.db.Collection(promptCollection).UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"template": template}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	// Evict so the next read refetches the new content.
	r.mu.Lock()
	delete(r.cache, name)
	r.mu.Unlock()
	return nil
}

func (r *promptRepository) ListPrompts(ctx context.Context) ([]string, error) {
	if r.db == nil {
		return append([]string(nil), defaultPromptOrder...), nil
	}

	cursor, err := r.db.Collection(promptCollection).Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		logger.Log.Warn("Prompt store list failed, falling back to defaults", "error", err)
		return append([]string(nil), defaultPromptOrder...), nil
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var doc struct {
			Name string `bson:"name"`
		}
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		names = append(names, doc.Name)
	}
	return names, nil
}

func (r *promptRepository) storeInCache(name, template string) {
	r.mu.Lock()
	r.cache[name] = template
	r.mu.Unlock()
}

// renderTemplate substitutes {name} placeholders. Every declared variable
// needs a substitution, every substitution must be declared, and no
// placeholder token may survive rendering.
func renderTemplate(name, template string, vars map[string]string) (string, error) {
	declared := declaredVariables(name, template)

	for _, v := range declared {
		if _, ok := vars[v]; !ok {
			return "", fmt.Errorf("%w: missing variable %q for prompt %q", domain.ErrTemplateRender, v, name)
		}
	}
	declaredSet := make(map[string]bool, len(declared))
	for _, v := range declared {
		declaredSet[v] = true
	}
	for v := range vars {
		if !declaredSet[v] {
			return "", fmt.Errorf("%w: variable %q is not declared by prompt %q", domain.ErrTemplateRender, v, name)
		}
	}

	// Check the template, not the rendered output: substituted values (raw
	// transcripts, JSON) may legitimately contain brace tokens of their own.
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if _, ok := vars[m[1]]; !ok {
			return "", fmt.Errorf("%w: unresolved placeholder {%s} in prompt %q", domain.ErrTemplateRender, m[1], name)
		}
	}

	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template), nil
}

// declaredVariables prefers the built-in declaration for known prompts and
// falls back to scanning the template text for customized ones.
func declaredVariables(name, template string) []string {
	if def, ok := defaultPrompts[name]; ok {
		return def.Variables
	}
	var vars []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			vars = append(vars, m[1])
		}
	}
	return vars
}
