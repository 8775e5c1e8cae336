// Package services binds the catalog readers and aggregations to the
// application's logging, tracing and metrics.
//
// CatalogService loads one catalog and answers reports over it:
//
//	svc := services.NewCatalogService(logger, providers.Tracer, metrics)
//	if err := svc.Load(ctx, "data/peliculas.csv"); err != nil {
//	    return err
//	}
//	top := svc.TopActors(ctx, 2, domain.YearRange{})
//
// Every load and report runs in its own span (catalog.load,
// catalog.report.<name>) and is counted in the catalog metrics. The
// aggregation results are exactly those of the dataprocessing package.
package services
