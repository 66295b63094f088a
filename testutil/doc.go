// Package testutil provides helpers for tests that wire code through a di
// container.
//
// # Quick Start
//
// A fresh container per test, reset automatically when the test ends:
//
//	func TestMyFeature(t *testing.T) {
//	    c := testutil.NewContainer(t)
//	    testutil.T(t).Install(c, storeFixture)
//	    svc := testutil.RequireResolve[MyService](t, c)
//	}
//
// Sharing the same wiring across subtests:
//
//	m := testutil.NewManager(ctx, testutil.NewContainer(t))
//	m.Add(storeFixture)
//	m.Add(clockFixture)
//	for _, tc := range cases {
//	    require.NoError(t, m.ResetAll())
//	    ...
//	}
//
// RecordingObserver captures resolution and construction events, e.g. to
// assert that a singleton's constructor ran exactly once:
//
//	obs := &testutil.RecordingObserver{}
//	c := testutil.NewContainer(t, di.WithObserver(obs))
//
// # Thread Safety
//
// Manager and RecordingObserver are safe for concurrent use.
package testutil
