/*
Package config loads resource catalogs and records from YAML or JSON files.

A catalog file declares resource kinds and their transitions:

	resources:
	  - kind: article
	    transitions:
	      - name: publish
	        href: /articles/{id}/publish
	        method: POST
	        when: state == "draft"
	      - name: feature
	        href: /articles/{id}/feature
	        guard: is_editor_pick   # resolved through a registry.Guards table

A record file lists resources:

	records:
	  - kind: article
	    id: "1"
	    attributes:
	      title: Hello
	      state: draft
*/
package config
