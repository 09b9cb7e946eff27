package classifier

import (
	"context"
	"encoding/json"
	"slices"

	"go.uber.org/zap"

	"github.com/teranos/coref/cluster"
	"github.com/teranos/coref/doc"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/feature"
	"github.com/teranos/coref/logger"
)

const topFeatures = 20

// Resolver trains a pairwise model and links mentions greedily with it.
type Resolver struct {
	ext     *feature.Extractor
	trainer Trainer
	model   Model
	log     *zap.SugaredLogger
}

// New returns an untrained resolver.
func New(ext *feature.Extractor, trainer Trainer) *Resolver {
	return &Resolver{
		ext:     ext,
		trainer: trainer,
		log:     logger.ComponentLogger("classifier"),
	}
}

// Name identifies the algorithm.
func (r *Resolver) Name() string { return "classifier" }

// Model returns the trained model, nil before training.
func (r *Resolver) Model() Model { return r.model }

// SetModel installs a model directly, bypassing training.
func (r *Resolver) SetModel(m Model) { r.model = m }

// Train generates pairwise data from docs and fits the model.
func (r *Resolver) Train(ctx context.Context, docs []doc.Labeled) error {
	ds, err := GenerateData(ctx, r.ext, docs)
	if err != nil {
		return err
	}
	r.log.Infow("training data generated",
		logger.FieldDatums, len(ds),
		"positives", ds.Positives(),
		logger.FieldCount, len(docs))

	m, err := r.trainer.Fit(ctx, ds)
	if err != nil {
		return errors.Wrap(err, "fitting classifier")
	}
	r.model = m

	if lm, ok := m.(*LogisticModel); ok {
		for _, w := range lm.TopFeatures(topFeatures) {
			r.log.Debugw("feature weight", logger.FieldFeature, w.Feature, logger.FieldWeight, w.Weight)
		}
	}
	return nil
}

// Resolve walks mentions in order. Each one is compared with the already
// resolved mentions, nearest first, and joins the entity of the first one
// the model accepts. A mention with no accepted candidate starts its own
// entity.
func (r *Resolver) Resolve(ctx context.Context, d *doc.Document) ([]cluster.ClusteredMention, error) {
	if r.model == nil {
		return nil, errors.Wrap(errors.ErrNotTrained, "classifier")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reg := cluster.NewRegistry(d)
	singletons := 0
	for i, m := range d.Mentions {
		linked := false
		for j := i - 1; j >= 0; j-- {
			cand := reg.Clustered(d.Mentions[j])
			v, err := r.ext.Extract(m, cand)
			if err != nil {
				return nil, errors.Wrapf(err, "document %s mentions %d/%d", d.ID, i, j)
			}
			if r.model.Classify(v) {
				reg.MarkCoreferent(m, cand.Entity.ID)
				linked = true
				break
			}
		}
		if !linked {
			reg.MarkSingleton(m)
			singletons++
		}
	}
	r.log.Debugw("document resolved",
		logger.FieldDocID, d.ID,
		logger.FieldMentions, len(d.Mentions),
		logger.FieldEntities, reg.Len(),
		"singletons", singletons)
	return reg.Assignments(), nil
}

// Export serializes the trained model. Only LogisticModel is serializable.
func (r *Resolver) Export() ([]byte, error) {
	lm, ok := r.model.(*LogisticModel)
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotTrained, "classifier model %T cannot be exported", r.model)
	}
	out := *lm
	out.Features = r.ext.Spec().Names()
	return json.Marshal(&out)
}

// Import restores a model written by Export. The model must have been
// trained with the same feature spec as the resolver's extractor.
func (r *Resolver) Import(data []byte) error {
	var lm LogisticModel
	if err := json.Unmarshal(data, &lm); err != nil {
		return errors.Wrap(err, "decoding classifier model")
	}
	if len(lm.Names) != len(lm.Weights) {
		return errors.Newf("classifier model has %d names and %d weights", len(lm.Names), len(lm.Weights))
	}
	if want := r.ext.Spec().Names(); !slices.Equal(lm.Features, want) {
		err := errors.Wrapf(errors.ErrIncompatibleModel,
			"classifier model was trained with features %v, configured %v", lm.Features, want)
		return errors.WithHint(err, "set classifier.features to the trained list or retrain with coref train")
	}
	lm.reindex()
	r.model = &lm
	return nil
}
