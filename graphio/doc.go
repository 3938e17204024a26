// Package graphio is the graph provider: it turns YAML or JSON documents into
// engine-ready core.Graph values (edges stably sorted by weight, ids assigned,
// structure validated) and encodes graphs, snapshots and views back out.
package graphio
