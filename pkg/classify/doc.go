// Package classify asks a language model which entry points of a codebase a
// user actually triggers.
//
// The flow has four steps:
//
//  1. [NewRequest] pairs every entry function of the architecture dataset
//     with up to [MaxCallees] of its outgoing calls
//  2. [BuildPrompt] renders the request as a single instruction prompt
//  3. a [Model] completes the prompt; [OpenRouter] and [Gemini] are provided
//  4. [ParseResponse] extracts and validates the JSON answer
//
// [Classifier] runs steps 2 to 4 with retries on transient provider errors.
// [Service] adds the session bookkeeping: it refuses to start while another
// run is in flight, stores the result in the session, and persists it in the
// background.
//
// A failed run leaves the previously stored classifications untouched.
package classify
