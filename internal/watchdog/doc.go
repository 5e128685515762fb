// Package watchdog keeps a tunneled endpoint reachable.
//
// Each cycle probes the public URL once. When the probe fails and the tunnel
// client is not in the process table, the client is launched detached with
// `<binary> tunnel --config <path> run <name>` and left alone; the next cycle
// decides whether anything else needs doing. There is no backoff and no
// restart limit.
//
// Prober, ProcessTable and Launcher are small interfaces so the loop policy
// can be tested without the network or real processes.
package watchdog
