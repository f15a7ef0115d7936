package preview

import "html/template"

type pageData struct {
	Title    string
	Fragment template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="hyperdom-root">{{.Fragment}}</div>
` + liveScript + `
</body>
</html>
`))

// liveScript replaces the root's content with every update message and
// reconnects with backoff.
const liveScript = `<script>
(function() {
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '/ws');

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            if (msg.type === 'update') {
                document.getElementById('hyperdom-root').innerHTML = msg.html;
            } else if (msg.type === 'error') {
                console.error('[hyperdom]', msg.error);
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    connect();
})();
</script>`
