// Package event implements the event-filtering core of the JDWP agent.
//
// When the target VM raises a notifiable occurrence (a breakpoint hit, a
// thrown exception, a field access, a single step, a thread or class
// lifecycle change), the agent must decide, per outstanding debugger
// request, whether the occurrence should be reported. JDWP expresses the
// decision as a list of request modifiers; an occurrence is reported for a
// request only when every one of its modifiers accepts it.
//
// # Components
//
//   - Info: one occurrence, built by the VM callback layer and read by
//     modifiers during one synchronous filtering pass.
//   - Modifier: one filter predicate. The protocol fixes eleven kinds,
//     from the stateful Count (fire once after N occurrences) to
//     class-name pattern filters and object-identity filters.
//   - Chain: the ordered modifier list of one request, combined with AND
//     semantics and evaluated in insertion order.
//
// # Matching semantics worth calling out
//
// ClassOnly uses assignability (the occurrence class may be a subtype of
// the filter class) while LocationOnly and FieldOnly use object identity.
// ClassMatch and ClassExclude compare the occurrence class name against a
// restricted glob: a single leading or trailing '*' and nothing else.
// InstanceOnly is the one modifier allowed to write to the occurrence
// record: when the receiver is unknown it resolves "this" from slot 0 of
// the current frame and stores it in Info.Instance for later modifiers of
// the same pass.
//
// Conditional and Step always accept. Conditional is reserved by the
// protocol and implemented by no VM; Step only carries the size and depth
// parameters for the single-step engine, which does its own filtering.
//
// # Ownership and concurrency
//
// Handle-owning modifiers retain their handles at construction (which can
// fail with runtime.ErrOutOfResources) and release them in Close. A Chain
// owns its modifiers and Close releases all of them.
//
// Matches and Chain.Match perform no blocking calls. Distinct chains may
// be evaluated concurrently from any threads; a single chain must be
// serialized by its caller because Count mutates its counter (the request
// layer in internal/request does exactly that).
package event
