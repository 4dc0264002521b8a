// Package retry provides automatic retry with exponential backoff for
// transient database connection failures.
//
// Only connection establishment is retried. Record processing during a
// load is never retried; a statement failure aborts the run.
//
//	classifier := retry.NewPostgreSQLErrorClassifier()
//	strategy := retry.NewExponentialBackoff(3)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return connect(ctx)
//	})
package retry
