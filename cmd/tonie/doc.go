// Command tonie manages Creative Tonie figurines from the terminal: it
// authenticates against the Tonie cloud, lists households and figurines,
// uploads audio chapters, removes chapters by title, and fetches remote
// audio for upload.
package main
